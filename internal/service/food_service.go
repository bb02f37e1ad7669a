package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/cache"
	"zero-waste-meals/internal/model"
	"zero-waste-meals/internal/repository"
)

// foodService implements FoodService.
type foodService struct {
	foodRepo repository.FoodRepository
	listings cache.ListingCache
	logger   zerolog.Logger
}

// NewFoodService creates a new food service.
func NewFoodService(foodRepo repository.FoodRepository, listings cache.ListingCache, logger zerolog.Logger) FoodService {
	return &foodService{
		foodRepo: foodRepo,
		listings: listings,
		logger:   logger.With().Str("service", "food").Logger(),
	}
}

// ListTopAvailable retrieves the top available items by quantity, serving
// from the listing cache when it holds a fresh copy.
func (s *foodService) ListTopAvailable(ctx context.Context) ([]model.Food, error) {
	if foods, ok := s.listings.GetTop(ctx); ok {
		s.logger.Debug().Int("count", len(foods)).Msg("top listing served from cache")
		return foods, nil
	}

	foods, err := s.foodRepo.ListTopAvailable(ctx, TopAvailableLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list top available foods")
		return nil, fmt.Errorf("failed to list top available foods: %w", err)
	}

	if foods == nil {
		foods = []model.Food{}
	}

	s.listings.SetTop(ctx, foods)

	return foods, nil
}

// SearchAvailable retrieves available items matching term, newest first.
func (s *foodService) SearchAvailable(ctx context.Context, term string) ([]model.Food, error) {
	foods, err := s.foodRepo.SearchAvailable(ctx, term)
	if err != nil {
		s.logger.Error().Err(err).Str("term", term).Msg("failed to search available foods")
		return nil, fmt.Errorf("failed to search available foods: %w", err)
	}

	if foods == nil {
		foods = []model.Food{}
	}

	s.logger.Debug().Str("term", term).Int("count", len(foods)).Msg("searched available foods")

	return foods, nil
}

// GetByID retrieves a single item, or nil when it does not exist.
func (s *foodService) GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	food, err := s.foodRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to get food")
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return food, nil
}

// ListByDonor retrieves all items donated by email.
func (s *foodService) ListByDonor(ctx context.Context, email string) ([]model.Food, error) {
	foods, err := s.foodRepo.ListByDonor(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("donor_email", email).Msg("failed to list foods by donor")
		return nil, fmt.Errorf("failed to list foods by donor: %w", err)
	}

	if foods == nil {
		foods = []model.Food{}
	}

	return foods, nil
}

// Create coerces the quantity, fills defaults, and inserts the item.
func (s *foodService) Create(ctx context.Context, params *model.CreateFoodParams) (*model.InsertOutcome, error) {
	if params == nil {
		return nil, fmt.Errorf("create food params are nil")
	}

	quantity, err := coerceQuantity(string(params.Quantity))
	if err != nil {
		s.logger.Warn().
			Str("quantity", string(params.Quantity)).
			Msg("rejected uncoercible quantity")
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = model.StatusAvailable
	}

	food := &model.Food{
		ID:         uuid.New(),
		Name:       params.Name,
		Quantity:   quantity,
		Status:     status,
		DonorEmail: params.DonorEmail,
		Date:       time.Now(),
	}

	if err := s.foodRepo.Create(ctx, food); err != nil {
		s.logger.Error().Err(err).Msg("failed to create food")
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	s.listings.Invalidate(ctx)

	s.logger.Info().
		Str("food_id", food.ID.String()).
		Str("donor_email", food.DonorEmail).
		Msg("food created successfully")

	return &model.InsertOutcome{InsertedID: food.ID}, nil
}

// Update applies a partial update with upsert semantics.
func (s *foodService) Update(ctx context.Context, id uuid.UUID, params *model.UpdateFoodParams) (*model.UpdateOutcome, error) {
	if params == nil {
		return nil, fmt.Errorf("update food params are nil")
	}

	patch := model.FoodPatch{
		Name:       params.Name,
		Status:     params.Status,
		DonorEmail: params.DonorEmail,
	}

	if params.Quantity != nil {
		quantity, err := coerceQuantity(string(*params.Quantity))
		if err != nil {
			s.logger.Warn().
				Str("quantity", string(*params.Quantity)).
				Str("food_id", id.String()).
				Msg("rejected uncoercible quantity")
			return nil, err
		}
		patch.Quantity = &quantity
	}

	outcome, err := s.foodRepo.Upsert(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to update food")
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	s.listings.Invalidate(ctx)

	return outcome, nil
}

// Delete removes an item. A missing item yields a zero deleted count.
func (s *foodService) Delete(ctx context.Context, id uuid.UUID) (*model.DeleteOutcome, error) {
	deleted, err := s.foodRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to delete food")
		return nil, fmt.Errorf("failed to delete food: %w", err)
	}

	s.listings.Invalidate(ctx)

	s.logger.Debug().
		Str("food_id", id.String()).
		Int64("deleted", deleted).
		Msg("food delete completed")

	return &model.DeleteOutcome{DeletedCount: deleted}, nil
}

// coerceQuantity parses the leading numeric prefix of raw. Input with no
// leading digits, including negative values, is rejected: quantities are
// non-negative by invariant.
func coerceQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "+")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == 0 {
		return 0, model.ErrInvalidQuantity
	}

	quantity, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, model.ErrInvalidQuantity
	}

	return quantity, nil
}
