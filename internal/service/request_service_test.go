package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"zero-waste-meals/internal/model"
)

// MockRequestRepository is a mock implementation of RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) ListByRequester(ctx context.Context, email string) ([]model.FoodRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodRequest), args.Error(1)
}

func (m *MockRequestRepository) Create(ctx context.Context, request *model.FoodRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func TestRequestService_ListForRequester(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Returns the requester's open requests", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		service := NewRequestService(mockRequestRepo, new(MockFoodRepository), new(MockListingCache), logger)

		testRequests := []model.FoodRequest{
			{ID: uuid.New(), FoodID: uuid.New(), ReqEmail: "r@x.com", Status: model.StatusRequested, Date: time.Now()},
		}
		mockRequestRepo.On("ListByRequester", ctx, "r@x.com").Return(testRequests, nil)

		requests, err := service.ListForRequester(ctx, "r@x.com")

		require.NoError(t, err)
		assert.Equal(t, testRequests, requests)
	})

	t.Run("No requests yields an empty slice", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		service := NewRequestService(mockRequestRepo, new(MockFoodRepository), new(MockListingCache), logger)

		mockRequestRepo.On("ListByRequester", ctx, "r@x.com").Return(nil, nil)

		requests, err := service.ListForRequester(ctx, "r@x.com")

		require.NoError(t, err)
		assert.NotNil(t, requests)
		assert.Empty(t, requests)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		service := NewRequestService(mockRequestRepo, new(MockFoodRepository), new(MockListingCache), logger)

		mockRequestRepo.On("ListByRequester", ctx, "r@x.com").Return(nil, errors.New("database error"))

		requests, err := service.ListForRequester(ctx, "r@x.com")

		require.Error(t, err)
		assert.Nil(t, requests)
	})
}

func TestRequestService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	foodID := uuid.New()

	t.Run("Inserts the request then flips the food status", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		mockFoodRepo := new(MockFoodRepository)
		mockCache := new(MockListingCache)
		service := NewRequestService(mockRequestRepo, mockFoodRepo, mockCache, logger)

		var created *model.FoodRequest
		mockRequestRepo.On("Create", ctx, mock.AnythingOfType("*model.FoodRequest")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.FoodRequest)
			}).
			Return(nil)
		mockFoodRepo.On("MarkRequested", ctx, foodID).Return(int64(1), nil)
		mockCache.On("Invalidate", ctx).Return()

		outcome, err := service.Create(ctx, &model.CreateRequestParams{
			FoodID:   foodID,
			ReqEmail: "r@x.com",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, created.ID, outcome.InsertedID)
		assert.Equal(t, foodID, created.FoodID)
		assert.Equal(t, "r@x.com", created.ReqEmail)
		assert.Equal(t, model.StatusRequested, created.Status)
		mockFoodRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("Missing foodId", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		service := NewRequestService(mockRequestRepo, new(MockFoodRepository), new(MockListingCache), logger)

		outcome, err := service.Create(ctx, &model.CreateRequestParams{ReqEmail: "r@x.com"})

		assert.ErrorIs(t, err, model.ErrMissingFoodID)
		assert.Nil(t, outcome)
		mockRequestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing reqEmail", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		service := NewRequestService(mockRequestRepo, new(MockFoodRepository), new(MockListingCache), logger)

		outcome, err := service.Create(ctx, &model.CreateRequestParams{FoodID: foodID})

		assert.ErrorIs(t, err, model.ErrMissingReqEmail)
		assert.Nil(t, outcome)
	})

	t.Run("Insert failure stops the sequence", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		mockFoodRepo := new(MockFoodRepository)
		service := NewRequestService(mockRequestRepo, mockFoodRepo, new(MockListingCache), logger)

		mockRequestRepo.On("Create", ctx, mock.AnythingOfType("*model.FoodRequest")).
			Return(errors.New("database error"))

		outcome, err := service.Create(ctx, &model.CreateRequestParams{
			FoodID:   foodID,
			ReqEmail: "r@x.com",
		})

		require.Error(t, err)
		assert.Nil(t, outcome)
		mockFoodRepo.AssertNotCalled(t, "MarkRequested", mock.Anything, mock.Anything)
	})

	t.Run("Status update failure is not rolled back", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		mockFoodRepo := new(MockFoodRepository)
		mockCache := new(MockListingCache)
		service := NewRequestService(mockRequestRepo, mockFoodRepo, mockCache, logger)

		mockRequestRepo.On("Create", ctx, mock.AnythingOfType("*model.FoodRequest")).Return(nil)
		mockFoodRepo.On("MarkRequested", ctx, foodID).Return(int64(0), errors.New("database error"))

		outcome, err := service.Create(ctx, &model.CreateRequestParams{
			FoodID:   foodID,
			ReqEmail: "r@x.com",
		})

		// The insert stands and its outcome is still returned
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.NotEqual(t, uuid.Nil, outcome.InsertedID)
		mockCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("Request against a vanished food still succeeds", func(t *testing.T) {
		mockRequestRepo := new(MockRequestRepository)
		mockFoodRepo := new(MockFoodRepository)
		mockCache := new(MockListingCache)
		service := NewRequestService(mockRequestRepo, mockFoodRepo, mockCache, logger)

		mockRequestRepo.On("Create", ctx, mock.AnythingOfType("*model.FoodRequest")).Return(nil)
		mockFoodRepo.On("MarkRequested", ctx, foodID).Return(int64(0), nil)

		outcome, err := service.Create(ctx, &model.CreateRequestParams{
			FoodID:   foodID,
			ReqEmail: "r@x.com",
		})

		require.NoError(t, err)
		require.NotNil(t, outcome)
		mockCache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}
