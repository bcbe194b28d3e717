package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/glcplatform/portal/internal/core/domain"
)

// DraftStore persists form drafts as JSON blobs in Redis.
// Key format: draft:<user_id>:<page>
//
// Drafts carry no TTL: a saved form stays restorable until the user deletes
// it or submits the form.
type DraftStore struct {
	client *redis.Client
}

// NewDraftStore creates a DraftStore wrapping the given Redis client.
func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

func (s *DraftStore) Save(ctx context.Context, userID int, page domain.PageID, draft domain.Draft) error {
	blob, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draft save: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID, page), blob, 0).Err(); err != nil {
		return fmt.Errorf("draft save: %w", err)
	}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, userID int, page domain.PageID) (domain.Draft, error) {
	blob, err := s.client.Get(ctx, s.key(userID, page)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft load: %w", err)
	}
	var draft domain.Draft
	if err := json.Unmarshal(blob, &draft); err != nil {
		return nil, fmt.Errorf("draft load: %w", err)
	}
	return draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, userID int, page domain.PageID) error {
	if err := s.client.Del(ctx, s.key(userID, page)).Err(); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

// Ping reports Redis reachability for the readiness probe.
func (s *DraftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *DraftStore) key(userID int, page domain.PageID) string {
	return fmt.Sprintf("draft:%d:%s", userID, page)
}
