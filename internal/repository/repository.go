package repository

import (
	"context"

	"github.com/google/uuid"

	"zero-waste-meals/internal/model"
)

// FoodRepository defines the interface for food-item data access operations.
type FoodRepository interface {
	// ListTopAvailable retrieves available items ordered by quantity
	// descending, truncated to limit.
	ListTopAvailable(ctx context.Context, limit int) ([]model.Food, error)

	// SearchAvailable retrieves available items whose name contains term as
	// a case-insensitive substring, ordered by date descending. An empty
	// term matches all available items.
	SearchAvailable(ctx context.Context, term string) ([]model.Food, error)

	// GetByID retrieves a single item by its ID, or nil if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error)

	// ListByDonor retrieves all items donated by email, regardless of status.
	ListByDonor(ctx context.Context, email string) ([]model.Food, error)

	// Create inserts a new food item.
	Create(ctx context.Context, food *model.Food) error

	// Upsert applies a partial update to the item matching id, inserting a
	// new record under that id when no match exists.
	Upsert(ctx context.Context, id uuid.UUID, patch model.FoodPatch) (*model.UpdateOutcome, error)

	// Delete removes the item matching id, returning the number of rows
	// removed (0 or 1).
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// MarkRequested sets the item's status to requested. The write is
	// idempotent; the returned count is 0 when no such item exists.
	MarkRequested(ctx context.Context, id uuid.UUID) (int64, error)
}

// RequestRepository defines the interface for food-request data access
// operations.
type RequestRepository interface {
	// ListByRequester retrieves all requests made by email that still carry
	// the requested status.
	ListByRequester(ctx context.Context, email string) ([]model.FoodRequest, error)

	// Create inserts a new food request.
	Create(ctx context.Context, request *model.FoodRequest) error
}
