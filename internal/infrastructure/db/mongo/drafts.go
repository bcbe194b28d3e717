package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glcplatform/portal/internal/core/domain"
)

const draftCollection = "drafts"

// DraftStore persists form drafts as one document per user and page.
// Like the Redis store, drafts carry no TTL: a saved form stays restorable
// until the user deletes it or submits the form.
type DraftStore struct {
	coll *mongo.Collection
}

// NewDraftStore creates a DraftStore over the drafts collection.
func NewDraftStore(db *mongo.Database) *DraftStore {
	return &DraftStore{coll: db.Collection(draftCollection)}
}

type draftDoc struct {
	UserID    int          `bson:"user_id"`
	Page      string       `bson:"page"`
	Fields    domain.Draft `bson:"fields"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

func (s *DraftStore) Save(ctx context.Context, userID int, page domain.PageID, draft domain.Draft) error {
	doc := draftDoc{
		UserID:    userID,
		Page:      string(page),
		Fields:    draft,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, s.filter(userID, page), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("draft save: %w", err)
	}
	return nil
}

func (s *DraftStore) Load(ctx context.Context, userID int, page domain.PageID) (domain.Draft, error) {
	var doc draftDoc
	if err := s.coll.FindOne(ctx, s.filter(userID, page)).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("draft load: %w", err)
	}
	return doc.Fields, nil
}

func (s *DraftStore) Delete(ctx context.Context, userID int, page domain.PageID) error {
	if _, err := s.coll.DeleteOne(ctx, s.filter(userID, page)); err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	return nil
}

// Ping reports MongoDB reachability for the readiness probe.
func (s *DraftStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func (s *DraftStore) filter(userID int, page domain.PageID) bson.M {
	return bson.M{"user_id": userID, "page": string(page)}
}
