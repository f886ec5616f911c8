// Package viewer serves a page that shows the ledger events live.
package viewer

import (
	"context"
	_ "embed"
	"net/http"
)

//go:embed index.html
var index []byte

// Handlers serves the viewer page.
type Handlers struct{}

// Index returns the viewer page. The page connects back to the events
// websocket of the node serving it.
func (Handlers) Index(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(index); err != nil {
		return err
	}

	return nil
}
