// ABOUTME: Single-select category filter state driving scoped feed reloads
// ABOUTME: Always re-queries on selection, including reselecting the active category

package feed

import (
	"context"
	"log/slog"
	"sync"
)

// Filter holds the active category selection for browsing. Selection is
// exclusive: picking a category clears any other highlight. Multi-select
// exists only as transient compose-form state and never passes through
// here.
type Filter struct {
	mu       sync.Mutex
	selected string // empty means the whole feed

	store   *Store
	updates *Broadcaster
	logger  *slog.Logger
}

// NewFilter creates a Filter over the given store. Pass nil logger for
// default.
func NewFilter(store *Store, updates *Broadcaster, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		store:   store,
		updates: updates,
		logger:  logger.With("component", "filter"),
	}
}

// SelectCategory makes categoryID the active selection and re-queries the
// store scoped to it. Reselecting the already-active category re-issues the
// scoped reload; there is no short-circuit. Stale responses are discarded
// by the store's load tokens, so the latest selection always wins.
func (f *Filter) SelectCategory(ctx context.Context, categoryID string) error {
	f.mu.Lock()
	f.selected = categoryID
	f.mu.Unlock()

	f.publishSelection(categoryID)
	return f.store.ReloadByCategory(ctx, categoryID)
}

// SelectAll clears the selection and reloads the whole feed.
func (f *Filter) SelectAll(ctx context.Context) error {
	f.mu.Lock()
	f.selected = ""
	f.mu.Unlock()

	f.publishSelection("")
	return f.store.Reload(ctx)
}

// Selected returns the active category id and whether one is selected.
func (f *Filter) Selected() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected, f.selected != ""
}

func (f *Filter) publishSelection(categoryID string) {
	f.logger.Debug("filter changed", "category_id", categoryID)
	if f.updates != nil {
		f.updates.Publish(Update{Kind: UpdateFilterChanged, CategoryID: categoryID})
	}
}
