package service

import (
	"context"

	"github.com/google/uuid"

	"zero-waste-meals/internal/model"
)

// TopAvailableLimit is the fixed size of the public top-quantity listing.
const TopAvailableLimit = 6

// FoodService defines operations for food-item management.
type FoodService interface {
	// ListTopAvailable retrieves the top available items by quantity.
	ListTopAvailable(ctx context.Context) ([]model.Food, error)

	// SearchAvailable retrieves available items whose name contains term,
	// newest first. An empty term matches all available items.
	SearchAvailable(ctx context.Context, term string) ([]model.Food, error)

	// GetByID retrieves a single item, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error)

	// ListByDonor retrieves all items donated by email, any status.
	ListByDonor(ctx context.Context, email string) ([]model.Food, error)

	// Create coerces and defaults the payload, then inserts a new item.
	Create(ctx context.Context, params *model.CreateFoodParams) (*model.InsertOutcome, error)

	// Update applies a partial update with upsert semantics.
	Update(ctx context.Context, id uuid.UUID, params *model.UpdateFoodParams) (*model.UpdateOutcome, error)

	// Delete removes an item; deleting a missing item is not an error.
	Delete(ctx context.Context, id uuid.UUID) (*model.DeleteOutcome, error)
}

// RequestService defines operations for food-request management.
type RequestService interface {
	// ListForRequester retrieves email's requests with requested status.
	ListForRequester(ctx context.Context, email string) ([]model.FoodRequest, error)

	// Create inserts a new request, then flips the referenced item's
	// status to requested as a second, independent step.
	Create(ctx context.Context, params *model.CreateRequestParams) (*model.InsertOutcome, error)
}
