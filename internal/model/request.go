package model

import (
	"time"

	"github.com/google/uuid"
)

// FoodRequest represents a recipient's claim on a food item. It holds a
// non-owning back-reference to the item; the item's lifetime is independent.
type FoodRequest struct {
	ID       uuid.UUID `json:"id" db:"id"`
	FoodID   uuid.UUID `json:"foodId" db:"food_id"`
	ReqEmail string    `json:"reqEmail" db:"req_email"`
	Status   string    `json:"status" db:"status"`
	Date     time.Time `json:"date" db:"date"`
}

// CreateRequestParams is the request payload for claiming a food item.
type CreateRequestParams struct {
	FoodID   uuid.UUID `json:"foodId"`
	ReqEmail string    `json:"reqEmail"`
}
