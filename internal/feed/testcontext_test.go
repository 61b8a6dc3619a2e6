// ABOUTME: Compatibility shim for testContext(t) on Go toolchains before 1.24
// ABOUTME: Returns a context canceled when the test finishes

package feed

import (
	"context"
	"testing"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
