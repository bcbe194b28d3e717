// Package memory provides in-memory store implementations for tests and
// single-node runs that do not want a Redis dependency.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DraftStore keeps drafts in a map. Drafts do not survive a restart.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]domain.Draft)}
}

func (s *DraftStore) Save(ctx context.Context, userID int, page domain.PageID, draft domain.Draft) error {
	cp := make(domain.Draft, len(draft))
	for k, v := range draft {
		cp[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key(userID, page)] = cp
	return nil
}

func (s *DraftStore) Load(ctx context.Context, userID int, page domain.PageID) (domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[key(userID, page)]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	cp := make(domain.Draft, len(draft))
	for k, v := range draft {
		cp[k] = v
	}
	return cp, nil
}

func (s *DraftStore) Delete(ctx context.Context, userID int, page domain.PageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key(userID, page))
	return nil
}

func (s *DraftStore) Ping(ctx context.Context) error { return nil }

func key(userID int, page domain.PageID) string {
	return fmt.Sprintf("draft:%d:%s", userID, page)
}
