package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vtnguyen/storeboard/internal/api"
	"github.com/vtnguyen/storeboard/internal/app/form"
	"github.com/vtnguyen/storeboard/internal/app/model"
	"github.com/vtnguyen/storeboard/internal/app/session"
)

type ReviewService interface {
	ListStoreReviews(ctx context.Context, storeID int64, page, limit int) (*api.Page[model.Review], error)
	CreateReview(ctx context.Context, draft *form.ReviewForm) (*model.Review, error)
	UpdateReview(ctx context.Context, id int64, draft *form.ReviewForm) (*model.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	CanModify(review model.Review) bool
}

type reviewService struct {
	client  *api.Client
	session *session.Session
	logger  zerolog.Logger
}

func NewReviewService(client *api.Client, sess *session.Session, logger zerolog.Logger) ReviewService {
	return &reviewService{client: client, session: sess, logger: logger}
}

func (s *reviewService) ListStoreReviews(ctx context.Context, storeID int64, page, limit int) (*api.Page[model.Review], error) {
	return s.client.ListStoreReviews(ctx, storeID, page, limit)
}

func (s *reviewService) CreateReview(ctx context.Context, draft *form.ReviewForm) (*model.Review, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	review, err := s.client.CreateReview(ctx, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("review_id", review.ID).Int64("store_id", review.StoreID).Msg("review created")
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id int64, draft *form.ReviewForm) (*model.Review, error) {
	if errs := draft.Validate(); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}
	review, err := s.client.UpdateReview(ctx, id, draft.ToWrite())
	if err != nil {
		return nil, asValidationError(err)
	}
	s.logger.Info().Int64("review_id", id).Msg("review updated")
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.client.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("review_id", id).Msg("review deleted")
	return nil
}

// CanModify reports whether the edit and delete affordances should show for
// a review. This is a display decision only; the backend enforces
// ownership on the actual calls.
func (s *reviewService) CanModify(review model.Review) bool {
	userID := s.session.CurrentUserID()
	return userID != nil && review.UserID != nil && *review.UserID == *userID
}
