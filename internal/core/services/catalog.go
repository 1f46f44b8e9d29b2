package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/mutation"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
	"github.com/localrag/ragchat-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// minPollGap bounds how often scheduled polls may hit the server when
// a timer tick races a mutation-triggered refresh.
const minPollGap = time.Second

// CatalogService caches the last known document catalog.
//
// Every successful fetch replaces the snapshot wholesale; a failed
// fetch leaves it untouched and only raises the error flag. Because
// snapshots are idempotent full replacements, concurrent refreshes are
// commutative and the last one to complete wins.
type CatalogService struct {
	mu      sync.RWMutex
	gateway driven.BackendGateway

	docs    []domain.DocumentRecord
	byID    map[string]domain.DocumentRecord
	loaded  bool
	lastErr error

	interval time.Duration
	limiter  *rate.Limiter

	del *mutation.Controller[string]
}

// NewCatalogService creates a catalog cache refreshed from the gateway.
// A non-positive interval falls back to the default.
func NewCatalogService(gateway driven.BackendGateway, interval time.Duration) *CatalogService {
	if interval <= 0 {
		interval = domain.DefaultPollInterval
	}

	return &CatalogService{
		gateway:  gateway,
		byID:     make(map[string]domain.DocumentRecord),
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(minPollGap), 1),
		del:      mutation.New[string](),
	}
}

// Refresh fetches the catalog and replaces the snapshot atomically.
func (s *CatalogService) Refresh(ctx context.Context) error {
	docs, err := s.gateway.ListDocuments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Keep the previous snapshot; a transient failure must not
		// blank the list.
		s.lastErr = err
		logger.Debug("catalog: refresh failed: %v", err)
		return fmt.Errorf("refresh catalog: %w", err)
	}

	byID := make(map[string]domain.DocumentRecord, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}

	s.docs = docs
	s.byID = byID
	s.loaded = true
	s.lastErr = nil
	logger.Debug("catalog: refreshed, %d documents", len(docs))
	return nil
}

// Poll is the scheduled variant of Refresh. Ticks that arrive while a
// recent refresh already ran are skipped.
func (s *CatalogService) Poll(ctx context.Context) error {
	if !s.limiter.Allow() {
		return nil
	}
	return s.Refresh(ctx)
}

// Invalidate forces an immediate refetch, bypassing the poll limiter.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Snapshot returns a copy of the cached records in server order.
func (s *CatalogService) Snapshot() []domain.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DocumentRecord, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns the cached record for a document ID.
func (s *CatalogService) Get(documentID string) (domain.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byID[documentID]
	return doc, ok
}

// State reports what the catalog view should display: the loading
// placeholder, the last complete snapshot, or the error placeholder.
func (s *CatalogService) State() driving.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.loaded:
		return driving.CatalogReady
	case s.lastErr != nil:
		return driving.CatalogError
	default:
		return driving.CatalogLoading
	}
}

// Err returns the error from the most recent failed refresh, or nil.
func (s *CatalogService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Delete removes a document after the confirm gate approves it.
func (s *CatalogService) Delete(ctx context.Context, documentID string, confirm driving.ConfirmFunc) error {
	doc, ok := s.Get(documentID)
	if !ok {
		doc = domain.DocumentRecord{ID: documentID}
	}

	if confirm == nil || !confirm(doc) {
		return domain.ErrDeleteCancelled
	}

	token := s.del.Begin()
	if err := s.gateway.DeleteDocument(ctx, documentID); err != nil {
		s.del.Fail(token, err)
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	s.del.Succeed(token, documentID)

	// The server owns chunk counts and downstream state, so refetch
	// instead of locally removing the record. The delete itself has
	// succeeded even if this refresh fails; the next poll will catch up.
	if err := s.Invalidate(ctx); err != nil {
		logger.Warn("catalog: post-delete refresh failed: %v", err)
	}
	return nil
}

// Interval returns the configured auto-refresh period.
func (s *CatalogService) Interval() time.Duration {
	return s.interval
}
