package driving

import (
	"context"
	"time"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// CatalogState describes what the catalog view should display.
type CatalogState int

const (
	// CatalogLoading means no snapshot has been fetched yet.
	CatalogLoading CatalogState = iota

	// CatalogReady means a complete snapshot is available. A later
	// refresh failure does not leave this state; it only sets Err.
	CatalogReady

	// CatalogError means the very first load failed and there is no
	// snapshot to fall back on.
	CatalogError
)

// String returns the string representation of the catalog state.
func (s CatalogState) String() string {
	switch s {
	case CatalogLoading:
		return "loading"
	case CatalogReady:
		return "ready"
	case CatalogError:
		return "error"
	default:
		return "unknown"
	}
}

// ConfirmFunc is a synchronous yes/no gate shown before a destructive
// operation. Returning false aborts the operation.
type ConfirmFunc func(doc domain.DocumentRecord) bool

// CatalogService caches the last known document catalog.
//
// The snapshot is replaced wholesale on every successful fetch and is
// never merged field-by-field. Concurrent refreshes are therefore
// commutative: the last one to complete wins.
type CatalogService interface {
	// Refresh fetches the catalog and replaces the snapshot atomically.
	// On failure the previous snapshot is retained and Err is set.
	Refresh(ctx context.Context) error

	// Poll is the scheduled variant of Refresh. It is rate-limited so
	// a timer tick racing a mutation-triggered refresh does not stack
	// redundant fetches.
	Poll(ctx context.Context) error

	// Invalidate discards cached belief and forces an immediate
	// refetch. Called after a mutation known to change server state.
	Invalidate(ctx context.Context) error

	// Snapshot returns a copy of the cached records in server order.
	Snapshot() []domain.DocumentRecord

	// Get returns the cached record for a document ID.
	Get(documentID string) (domain.DocumentRecord, bool)

	// State reports what the catalog view should display.
	State() CatalogState

	// Err returns the error from the most recent failed refresh, or
	// nil if the last refresh succeeded.
	Err() error

	// Delete removes a document after the confirm gate approves it.
	// Declined confirmation returns domain.ErrDeleteCancelled without
	// any transport call. On success the catalog is invalidated rather
	// than locally patched: chunk counts are the server's truth.
	Delete(ctx context.Context, documentID string, confirm ConfirmFunc) error

	// Interval returns the configured auto-refresh period.
	Interval() time.Duration
}
