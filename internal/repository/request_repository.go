package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/model"
)

// requestRepository implements the RequestRepository interface using
// PostgreSQL.
type requestRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRequestRepository creates a new PostgreSQL-backed request repository.
func NewRequestRepository(pool *pgxpool.Pool, logger zerolog.Logger) RequestRepository {
	return &requestRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "request").Logger(),
	}
}

// ListByRequester retrieves requests made by email with requested status.
func (r *requestRepository) ListByRequester(ctx context.Context, email string) ([]model.FoodRequest, error) {
	query := `
		SELECT id, food_id, req_email, status, date
		FROM food_requests
		WHERE req_email = $1 AND status = $2
	`

	rows, err := r.pool.Query(ctx, query, email, model.StatusRequested)
	if err != nil {
		r.logger.Error().Err(err).Str("req_email", email).Msg("failed to query requests")
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []model.FoodRequest
	for rows.Next() {
		var req model.FoodRequest
		err := rows.Scan(&req.ID, &req.FoodID, &req.ReqEmail, &req.Status, &req.Date)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan request row")
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating request rows")
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

// Create inserts a new food request.
func (r *requestRepository) Create(ctx context.Context, request *model.FoodRequest) error {
	query := `
		INSERT INTO food_requests (id, food_id, req_email, status, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		request.ID, request.FoodID, request.ReqEmail, request.Status, request.Date)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("request_id", request.ID.String()).
			Str("food_id", request.FoodID.String()).
			Msg("failed to create request")
		return fmt.Errorf("failed to create request: %w", err)
	}

	r.logger.Debug().
		Str("request_id", request.ID.String()).
		Str("food_id", request.FoodID.String()).
		Msg("request created successfully")

	return nil
}
