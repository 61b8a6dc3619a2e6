// ABOUTME: Terminal client for a remote social feed via the feedsync core.
// ABOUTME: Readline-style command loop; renders feed updates with colored output.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/feedsync/internal/api"
	"github.com/2389/feedsync/internal/config"
	"github.com/2389/feedsync/internal/feed"
	"github.com/2389/feedsync/internal/session"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	server := flag.String("server", "", "Collaborator base URL (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *server != "" {
		cfg.Server.BaseURL = *server
	}

	logger := setupLogger(cfg.Logging)

	client, err := api.New(cfg.Server.BaseURL, cfg.Server.Timeout, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := newApp(client, logger)

	fmt.Printf("feedsync-tui connected to %s\n", cfg.Server.BaseURL)
	fmt.Println("Type /help for commands. Ctrl+C to quit.")
	fmt.Println()

	go a.renderLoop(ctx)

	if a.gate.CheckStatus(ctx) {
		color.Green("Session restored, loading feed...")
		a.initFeed(ctx)
	} else {
		fmt.Println("Not logged in. Use /login <username> <password> or /register.")
	}

	if err := a.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

// setupLogger builds the slog logger from logging config.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// app wires the feed components together and drives them from the command
// loop. It is the rendering collaborator of the core: renderLoop consumes
// the broadcaster's updates and prints them.
type app struct {
	client     *api.Client
	gate       *session.Gate
	updates    *feed.Broadcaster
	store      *feed.Store
	reconciler *feed.Reconciler
	threads    *feed.Threads
	filter     *feed.Filter
}

func newApp(client *api.Client, logger *slog.Logger) *app {
	gate := session.NewGate(client, logger)
	updates := feed.NewBroadcaster(logger)
	store := feed.NewStore(client, updates, logger)
	return &app{
		client:     client,
		gate:       gate,
		updates:    updates,
		store:      store,
		reconciler: feed.NewReconciler(store, client, logger),
		threads:    feed.NewThreads(store, client, gate, updates, logger),
		filter:     feed.NewFilter(store, updates, logger),
	}
}

// initFeed performs the gated initial load after authentication.
func (a *app) initFeed(ctx context.Context) {
	if err := a.store.Reload(ctx); err != nil {
		color.Red("Failed to load feed: %v (use /reload to retry)", err)
	}
}

func (a *app) run(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		a.dispatch(ctx, input)
		fmt.Println()
	}
}

func (a *app) dispatch(ctx context.Context, input string) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/help":
		printHelp()
	case "/register":
		a.register(ctx, rest)
	case "/login":
		a.login(ctx, rest)
	case "/logout":
		if err := a.gate.Logout(ctx); err != nil {
			color.Red("Logout failed: %v", err)
			return
		}
		color.Green("Logged out")
	case "/reload", "/all":
		a.authorized(ctx, func() error { return a.filter.SelectAll(ctx) })
	case "/cat":
		if rest == "" {
			fmt.Println("Usage: /cat <category-id>")
			return
		}
		a.authorized(ctx, func() error { return a.filter.SelectCategory(ctx, rest) })
	case "/categories":
		a.authorized(ctx, func() error { return a.listCategories(ctx) })
	case "/like":
		a.authorized(ctx, func() error { return a.reconciler.React(ctx, rest, feed.VoteLike) })
	case "/dislike":
		a.authorized(ctx, func() error { return a.reconciler.React(ctx, rest, feed.VoteDislike) })
	case "/comments":
		a.authorized(ctx, func() error { return a.threads.Reveal(ctx, rest) })
	case "/comment":
		postID, content, _ := strings.Cut(rest, " ")
		a.authorized(ctx, func() error { return a.threads.Submit(ctx, postID, content) })
	case "/post":
		a.authorized(ctx, func() error { return a.createPost(ctx, rest) })
	default:
		fmt.Printf("Unknown command %s. Try /help.\n", cmd)
	}
}

// authorized runs fn only when the session gate allows it, printing any
// operation error inline.
func (a *app) authorized(ctx context.Context, fn func() error) {
	if !a.gate.Authenticated() {
		color.Yellow("Not logged in. Use /login first.")
		return
	}
	if err := fn(); err != nil {
		if feed.IsValidation(err) {
			color.Yellow("%v", err)
			return
		}
		color.Red("Error: %v", err)
	}
}

func (a *app) register(ctx context.Context, rest string) {
	username, password, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("Usage: /register <username> <password>")
		return
	}
	if err := a.gate.Register(ctx, username, password); err != nil {
		color.Red("Registration failed: %v", err)
		return
	}
	color.Green("Registration successful! Please login.")
}

func (a *app) login(ctx context.Context, rest string) {
	username, password, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("Usage: /login <username> <password>")
		return
	}
	if err := a.gate.Login(ctx, username, password); err != nil {
		color.Red("Login failed: %v", err)
		return
	}
	color.Green("Logged in as %s", username)
	a.initFeed(ctx)
}

func (a *app) listCategories(ctx context.Context) error {
	categories, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	selected, _ := a.filter.Selected()
	fmt.Println("Categories:")
	for _, c := range categories {
		marker := " "
		if c.ID == selected {
			marker = "*"
		}
		cyan.Printf("  %s %s", marker, c.ID)
		fmt.Printf("  %s\n", c.Name)
	}
	return nil
}

// createPost parses "/post <cat1,cat2> <content...>" and submits it. The
// created post is prepended to the store, which emits a single render
// instruction for it.
func (a *app) createPost(ctx context.Context, rest string) error {
	catArg, content, _ := strings.Cut(rest, " ")
	var categoryIDs []string
	for _, id := range strings.Split(catArg, ",") {
		if id = strings.TrimSpace(id); id != "" {
			categoryIDs = append(categoryIDs, id)
		}
	}

	post, err := a.client.CreatePost(ctx, content, categoryIDs, "", nil)
	if err != nil {
		return err
	}
	a.store.InsertCreated(post)
	return nil
}

// renderLoop consumes render instructions and prints them. It is the only
// place that turns feed state into display output.
func (a *app) renderLoop(ctx context.Context) {
	ch, _ := a.updates.Subscribe(ctx)
	for update := range ch {
		renderUpdate(update)
	}
}

func renderUpdate(u feed.Update) {
	switch u.Kind {
	case feed.UpdateFeedReplaced:
		fmt.Println()
		if len(u.Posts) == 0 {
			fmt.Println("No posts yet. Be the first to post!")
			break
		}
		for _, p := range u.Posts {
			renderPost(p)
		}
	case feed.UpdatePostInserted:
		fmt.Println()
		color.Green("New post:")
		renderPost(*u.Post)
	case feed.UpdateReaction:
		p := *u.Post
		fmt.Printf("\n%s: %d likes / %d dislikes (you: %s)\n", p.ID, p.Likes, p.Dislikes, p.ViewerVote)
	case feed.UpdateThreadLoaded:
		fmt.Println()
		if len(u.Comments) == 0 {
			fmt.Println("No comments yet")
			break
		}
		for _, c := range u.Comments {
			renderComment(c)
		}
	case feed.UpdateCommentAdded:
		fmt.Println()
		renderComment(*u.Comment)
	case feed.UpdateFilterChanged:
		if u.CategoryID == "" {
			fmt.Println("\nShowing all posts")
		} else {
			fmt.Printf("\nShowing category %s\n", u.CategoryID)
		}
	}
}

func renderPost(p feed.Post) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Printf("[%s] %s", p.ID, p.Author)
	fmt.Printf("  %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  %s\n", p.Content)
	if p.ImagePath != "" {
		fmt.Printf("  (image: %s)\n", p.ImagePath)
	}
	if len(p.Categories) > 0 {
		fmt.Printf("  #%s\n", strings.Join(p.Categories, " #"))
	}
	yellow.Printf("  %d likes  %d dislikes  %d comments", p.Likes, p.Dislikes, p.CommentCount)
	if p.ViewerVote != feed.VoteNone {
		fmt.Printf("  (you: %s)", p.ViewerVote)
	}
	fmt.Println()
}

func renderComment(c feed.Comment) {
	cyan := color.New(color.FgCyan)
	cyan.Printf("  %s", c.Author)
	fmt.Printf("  %s\n    %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Content)
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /register <user> <pass>     Create an account")
	fmt.Println("  /login <user> <pass>        Log in and load the feed")
	fmt.Println("  /logout                     Log out")
	fmt.Println("  /reload, /all               Show all posts")
	fmt.Println("  /categories                 List categories")
	fmt.Println("  /cat <id>                   Show posts in one category")
	fmt.Println("  /post <cats> <content>      Create a post (cats: comma-separated ids)")
	fmt.Println("  /like <post>                Like a post")
	fmt.Println("  /dislike <post>             Dislike a post")
	fmt.Println("  /comments <post>            Show a post's comments")
	fmt.Println("  /comment <post> <content>   Comment on a post")
	fmt.Println("  /help                       Show this help")
	fmt.Println("  /quit                       Exit")
}
