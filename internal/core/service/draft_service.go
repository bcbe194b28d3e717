package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/api/metrics"
	"github.com/glcplatform/portal/internal/core/domain"
	"github.com/glcplatform/portal/internal/core/ports"
)

// DraftService fronts the draft store with page validation and metrics.
// Drafts exist only for pages that carry a form; today that is the apply
// page.
type DraftService struct {
	store  ports.DraftStore
	logger zerolog.Logger
}

func NewDraftService(store ports.DraftStore, logger zerolog.Logger) *DraftService {
	return &DraftService{store: store, logger: logger}
}

var draftPages = map[domain.PageID]struct{}{
	domain.PageApply: {},
}

func draftablePage(page domain.PageID) bool {
	_, ok := draftPages[page]
	return ok
}

func (s *DraftService) Save(ctx context.Context, sess domain.Session, page domain.PageID, draft domain.Draft) error {
	if !draftablePage(page) {
		return domain.ErrInvalidInput
	}
	if err := s.store.Save(ctx, sess.UserID, page, draft); err != nil {
		metrics.DraftOpsTotal.WithLabelValues("save", "error").Inc()
		s.logger.Error().Err(err).Int("user_id", sess.UserID).Str("page", string(page)).Msg("draft save failed")
		return err
	}
	metrics.DraftOpsTotal.WithLabelValues("save", "ok").Inc()
	return nil
}

func (s *DraftService) Load(ctx context.Context, sess domain.Session, page domain.PageID) (domain.Draft, error) {
	if !draftablePage(page) {
		return nil, domain.ErrInvalidInput
	}
	draft, err := s.store.Load(ctx, sess.UserID, page)
	switch {
	case errors.Is(err, domain.ErrDraftNotFound):
		metrics.DraftOpsTotal.WithLabelValues("load", "miss").Inc()
		return nil, err
	case err != nil:
		metrics.DraftOpsTotal.WithLabelValues("load", "error").Inc()
		s.logger.Error().Err(err).Int("user_id", sess.UserID).Str("page", string(page)).Msg("draft load failed")
		return nil, err
	}
	metrics.DraftOpsTotal.WithLabelValues("load", "ok").Inc()
	return draft, nil
}

func (s *DraftService) Delete(ctx context.Context, sess domain.Session, page domain.PageID) error {
	if !draftablePage(page) {
		return domain.ErrInvalidInput
	}
	if err := s.store.Delete(ctx, sess.UserID, page); err != nil {
		metrics.DraftOpsTotal.WithLabelValues("delete", "error").Inc()
		s.logger.Error().Err(err).Int("user_id", sess.UserID).Str("page", string(page)).Msg("draft delete failed")
		return err
	}
	metrics.DraftOpsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}
