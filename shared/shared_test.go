package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookit/shared"
	cacheMocks "bookit/shared/cache/mocks"
	"bookit/shared/constant"
	"bookit/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{total: 0, limit: 10, expected: 1},
		{total: 10, limit: 0, expected: 1},
		{total: 10, limit: 10, expected: 1},
		{total: 11, limit: 10, expected: 2},
		{total: 95, limit: 20, expected: 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

type updateRequest struct {
	Name       string   `db:"name"`
	CategoryID *string  `db:"category_id"`
	Price      *float64 `db:"price"`
	Active     *bool    `db:"active"`
	Duration   int      `db:"duration_minutes"`
	Note       string
	Internal   string `db:"-"`
}

func TestTransformFields(t *testing.T) {
	category := "5b1c2f8a-3a8e-4a43-9d5f-2f1d0a6c7e11"
	price := 0.0
	inactive := false

	result := shared.TransformFields(updateRequest{
		Name:       "VIP 2",
		CategoryID: &category,
		Price:      &price,
		Active:     &inactive,
		Note:       "skipped",
		Internal:   "skipped",
	}, "staff-1")

	assert.Equal(t, "VIP 2", result["name"])
	assert.Equal(t, category, result["category_id"])
	assert.Equal(t, 0.0, result["price"])
	assert.Equal(t, false, result["active"])
	assert.NotContains(t, result, "duration_minutes")
	assert.NotContains(t, result, "-")
	assert.Len(t, result, 6)

	assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
}

func TestTransformFieldsAcceptsPointer(t *testing.T) {
	result := shared.TransformFields(&updateRequest{Duration: 90}, "staff-2")

	assert.Equal(t, 90, result["duration_minutes"])
	assert.Len(t, result, 3)
}

func TestFilters(t *testing.T) {
	scoped := shared.FilterByStoreAndID("store-1", "room-1", "id", "rooms")

	where, args := scoped.GetWhereClause()

	assert.Equal(t, "(rooms.store_id = :store_id AND rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"store_id": "store-1", "id": "room-1"}, args)

	byID := shared.FilterByID("tok", "confirmation_token", "booking_requests")
	where, _ = byID.GetWhereClause()
	assert.Equal(t, "(booking_requests.confirmation_token = :confirmation_token)", where)

	storeOnly := shared.FilterByStore("store-1", "")
	where, _ = storeOnly.GetWhereClause()
	assert.Equal(t, "(store_id = :store_id)", where)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "availability:store-1:2030-01-10", shared.BuildCacheKey("availability", "store-1", "2030-01-10"))
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByStore("store-1", "rooms")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	require.True(t, strings.HasPrefix(first, "room:gets:"))
	assert.Len(t, strings.TrimPrefix(first, "room:gets:"), 32)
}

func TestInvalidateCaches(t *testing.T) {
	mockCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}
