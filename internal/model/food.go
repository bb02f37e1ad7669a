package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Food item statuses.
const (
	StatusAvailable = "available"
	StatusRequested = "requested"
)

// Food represents a donated food item.
type Food struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Status     string    `json:"status" db:"status"`
	DonorEmail string    `json:"donorEmail" db:"donor_email"`
	Date       time.Time `json:"date" db:"date"`
}

// RawQuantity holds a quantity value exactly as the client sent it.
// Clients send quantities as either JSON numbers or free-text strings
// ("12abc"), so decoding defers coercion to the service layer.
type RawQuantity string

// UnmarshalJSON accepts both string and number tokens.
func (q *RawQuantity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = RawQuantity(s)
		return nil
	}
	*q = RawQuantity(data)
	return nil
}

// CreateFoodParams is the request payload for creating a food item.
type CreateFoodParams struct {
	Name       string      `json:"name"`
	Quantity   RawQuantity `json:"quantity"`
	Status     string      `json:"status"`
	DonorEmail string      `json:"donorEmail"`
}

// UpdateFoodParams is the partial payload for updating a food item.
// Nil fields are left untouched on an existing record.
type UpdateFoodParams struct {
	Name       *string      `json:"name"`
	Quantity   *RawQuantity `json:"quantity"`
	Status     *string      `json:"status"`
	DonorEmail *string      `json:"donorEmail"`
}

// FoodPatch is the typed partial update applied by the store after the
// service layer has coerced raw input. Nil fields keep existing values;
// on an upsert-insert they fall back to column defaults.
type FoodPatch struct {
	Name       *string
	Quantity   *int
	Status     *string
	DonorEmail *string
}

// InsertOutcome reports the result of an insert operation.
type InsertOutcome struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

// UpdateOutcome reports the result of an upsert operation: whether an
// existing record matched, and the identifier of a freshly inserted one.
type UpdateOutcome struct {
	MatchedCount  int64      `json:"matchedCount"`
	ModifiedCount int64      `json:"modifiedCount"`
	UpsertedID    *uuid.UUID `json:"upsertedId,omitempty"`
}

// DeleteOutcome reports the number of records removed (0 or 1).
type DeleteOutcome struct {
	DeletedCount int64 `json:"deletedCount"`
}
