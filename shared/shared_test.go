package shared_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carshare/shared"
	"carshare/shared/cache/mocks"
	"carshare/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "single item", total: 1, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("r1", "id", "resources")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(resources.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r1"}, args)
	assert.Equal(t, dto.FilterOperatorEq, filter.Filters[0].(dto.Filter).Operator)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "resource:rent-info", shared.BuildCacheKey("resource:rent-info"))
	assert.Equal(t, "resource:rent-info:r1", shared.BuildCacheKey("resource:rent-info", "r1"))
	assert.Equal(t, "feed:u1:2:10", shared.BuildCacheKey("feed", "u1", 2, 10))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "feed:u1:*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "feed:u1")

	redisCache.EXPECT().Clear(gomock.Any(), "feed:u2:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "feed:u2")
}
