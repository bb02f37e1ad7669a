package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/model"
)

// foodRepository implements the FoodRepository interface using PostgreSQL.
type foodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFoodRepository creates a new PostgreSQL-backed food repository.
func NewFoodRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodRepository {
	return &foodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food").Logger(),
	}
}

const foodColumns = "id, name, quantity, status, donor_email, date"

// ListTopAvailable retrieves available items ordered by quantity descending.
func (r *foodRepository) ListTopAvailable(ctx context.Context, limit int) ([]model.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE status = $1
		ORDER BY quantity DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, model.StatusAvailable, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query top available foods")
		return nil, fmt.Errorf("failed to query top available foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// SearchAvailable retrieves available items matching term, newest first.
func (r *foodRepository) SearchAvailable(ctx context.Context, term string) ([]model.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE status = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY date DESC
	`

	rows, err := r.pool.Query(ctx, query, model.StatusAvailable, term)
	if err != nil {
		r.logger.Error().Err(err).Str("term", term).Msg("failed to search available foods")
		return nil, fmt.Errorf("failed to search available foods: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// GetByID retrieves a single item by its ID.
func (r *foodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE id = $1
	`

	var f model.Food
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&f.ID, &f.Name, &f.Quantity, &f.Status, &f.DonorEmail, &f.Date)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("food_id", id.String()).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to query food")
		return nil, fmt.Errorf("failed to query food: %w", err)
	}

	return &f, nil
}

// ListByDonor retrieves all items donated by email, any status.
func (r *foodRepository) ListByDonor(ctx context.Context, email string) ([]model.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE donor_email = $1
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		r.logger.Error().Err(err).Str("donor_email", email).Msg("failed to query foods by donor")
		return nil, fmt.Errorf("failed to query foods by donor: %w", err)
	}
	defer rows.Close()

	return scanFoods(rows)
}

// Create inserts a new food item.
func (r *foodRepository) Create(ctx context.Context, food *model.Food) error {
	query := `
		INSERT INTO foods (id, name, quantity, status, donor_email, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		food.ID, food.Name, food.Quantity, food.Status, food.DonorEmail, food.Date)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", food.ID.String()).Msg("failed to create food")
		return fmt.Errorf("failed to create food: %w", err)
	}

	r.logger.Debug().Str("food_id", food.ID.String()).Msg("food created successfully")

	return nil
}

// Upsert applies a partial update to the item matching id. When no row
// matches, a new record is inserted under that id with column defaults
// filling the fields the patch leaves unset.
func (r *foodRepository) Upsert(ctx context.Context, id uuid.UUID, patch model.FoodPatch) (*model.UpdateOutcome, error) {
	updateQuery := `
		UPDATE foods
		SET name = COALESCE($2, name),
		    quantity = COALESCE($3, quantity),
		    status = COALESCE($4, status),
		    donor_email = COALESCE($5, donor_email)
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, updateQuery,
		id, patch.Name, patch.Quantity, patch.Status, patch.DonorEmail)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to update food")
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return &model.UpdateOutcome{
			MatchedCount:  tag.RowsAffected(),
			ModifiedCount: tag.RowsAffected(),
		}, nil
	}

	insertQuery := `
		INSERT INTO foods (id, name, quantity, status, donor_email, date)
		VALUES ($1,
		        COALESCE($2, ''),
		        COALESCE($3, 0),
		        COALESCE($4, 'available'),
		        COALESCE($5, ''),
		        NOW())
	`

	_, err = r.pool.Exec(ctx, insertQuery,
		id, patch.Name, patch.Quantity, patch.Status, patch.DonorEmail)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to upsert food")
		return nil, fmt.Errorf("failed to upsert food: %w", err)
	}

	r.logger.Debug().Str("food_id", id.String()).Msg("food upserted as new record")

	upserted := id
	return &model.UpdateOutcome{UpsertedID: &upserted}, nil
}

// Delete removes the item matching id.
func (r *foodRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM foods WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to delete food")
		return 0, fmt.Errorf("failed to delete food: %w", err)
	}

	return tag.RowsAffected(), nil
}

// MarkRequested flips the item's status to requested. Repeating the write
// for an already requested item is a no-op at the record level.
func (r *foodRepository) MarkRequested(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE foods SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, model.StatusRequested)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to mark food requested")
		return 0, fmt.Errorf("failed to mark food requested: %w", err)
	}

	return tag.RowsAffected(), nil
}

// scanFoods collects food rows, propagating scan and iteration errors.
func scanFoods(rows pgx.Rows) ([]model.Food, error) {
	var foods []model.Food
	for rows.Next() {
		var f model.Food
		err := rows.Scan(&f.ID, &f.Name, &f.Quantity, &f.Status, &f.DonorEmail, &f.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return foods, nil
}
