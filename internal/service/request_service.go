package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/cache"
	"zero-waste-meals/internal/model"
	"zero-waste-meals/internal/repository"
)

// requestService implements RequestService.
type requestService struct {
	requestRepo repository.RequestRepository
	foodRepo    repository.FoodRepository
	listings    cache.ListingCache
	logger      zerolog.Logger
}

// NewRequestService creates a new request service.
func NewRequestService(
	requestRepo repository.RequestRepository,
	foodRepo repository.FoodRepository,
	listings cache.ListingCache,
	logger zerolog.Logger,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		foodRepo:    foodRepo,
		listings:    listings,
		logger:      logger.With().Str("service", "request").Logger(),
	}
}

// ListForRequester retrieves email's requests with requested status.
func (s *requestService) ListForRequester(ctx context.Context, email string) ([]model.FoodRequest, error) {
	requests, err := s.requestRepo.ListByRequester(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("req_email", email).Msg("failed to list requests")
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	if requests == nil {
		requests = []model.FoodRequest{}
	}

	return requests, nil
}

// Create inserts a new request, then flips the referenced item's status to
// requested. The two writes are deliberately not atomic: the insert commits
// first, and a failed status update is logged without rolling it back. The
// status write is idempotent, so concurrent requests against the same item
// can duplicate request records but never corrupt the item's status.
func (s *requestService) Create(ctx context.Context, params *model.CreateRequestParams) (*model.InsertOutcome, error) {
	if params == nil {
		return nil, fmt.Errorf("create request params are nil")
	}

	if params.FoodID == uuid.Nil {
		return nil, model.ErrMissingFoodID
	}

	if params.ReqEmail == "" {
		return nil, model.ErrMissingReqEmail
	}

	request := &model.FoodRequest{
		ID:       uuid.New(),
		FoodID:   params.FoodID,
		ReqEmail: params.ReqEmail,
		Status:   model.StatusRequested,
		Date:     time.Now(),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.logger.Error().
			Err(err).
			Str("food_id", params.FoodID.String()).
			Msg("failed to create request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	affected, err := s.foodRepo.MarkRequested(ctx, params.FoodID)
	switch {
	case err != nil:
		s.logger.Error().
			Err(err).
			Str("request_id", request.ID.String()).
			Str("food_id", params.FoodID.String()).
			Msg("request recorded but food status update failed")
	case affected == 0:
		s.logger.Warn().
			Str("request_id", request.ID.String()).
			Str("food_id", params.FoodID.String()).
			Msg("request recorded for a food that no longer exists")
	default:
		s.listings.Invalidate(ctx)
	}

	s.logger.Info().
		Str("request_id", request.ID.String()).
		Str("food_id", params.FoodID.String()).
		Str("req_email", params.ReqEmail).
		Msg("request created successfully")

	return &model.InsertOutcome{InsertedID: request.ID}, nil
}
