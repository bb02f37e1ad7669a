package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"zero-waste-meals/internal/auth"
	"zero-waste-meals/internal/cache"
	"zero-waste-meals/internal/config"
	"zero-waste-meals/internal/database"
	"zero-waste-meals/internal/handler"
	"zero-waste-meals/internal/model"
	"zero-waste-meals/internal/repository"
	"zero-waste-meals/internal/router"
	"zero-waste-meals/internal/service"
)

// TestSecret signs the tokens minted for integration runs.
const TestSecret = "integration-secret-integration-ok"

// TestEnv bundles the running API server and its backing database.
type TestEnv struct {
	Server *httptest.Server
	Pool   *pgxpool.Pool
}

// SetupTestEnv starts a PostgreSQL container and an API server wired the
// same way main is, minus Redis.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	logger := zerolog.Nop()

	verifier, err := auth.NewHMACVerifier(config.AuthConfig{JWTSecret: TestSecret})
	if err != nil {
		t.Fatalf("failed to create token verifier: %v", err)
	}

	listings := cache.NewNoopCache()

	foodRepo := repository.NewFoodRepository(pool, logger)
	requestRepo := repository.NewRequestRepository(pool, logger)

	foodService := service.NewFoodService(foodRepo, listings, logger)
	requestService := service.NewRequestService(requestRepo, foodRepo, listings, logger)

	foodHandler := handler.NewFoodHandler(foodService, logger)
	requestHandler := handler.NewRequestHandler(requestService, logger)

	server := httptest.NewServer(router.New(foodHandler, requestHandler, verifier, logger))

	t.Cleanup(func() {
		server.Close()
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestEnv{
		Server: server,
		Pool:   pool,
	}
}

// MintToken issues a short-lived bearer token for email.
func MintToken(t *testing.T, email string) string {
	t.Helper()

	token, err := auth.IssueToken(TestSecret, email, email, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// SeedFood inserts a food item directly into the database.
func SeedFood(t *testing.T, pool *pgxpool.Pool, food model.Food) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		"INSERT INTO foods (id, name, quantity, status, donor_email, date) VALUES ($1, $2, $3, $4, $5, $6)",
		food.ID, food.Name, food.Quantity, food.Status, food.DonorEmail, food.Date,
	)
	if err != nil {
		t.Fatalf("failed to seed food %s: %v", food.ID, err)
	}
}

// CleanupDB removes all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, table := range []string{"food_requests", "foods"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
