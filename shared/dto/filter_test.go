package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookit/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name:         "equal with table",
			filter:       dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "booking_requests"},
			expectedSQL:  "booking_requests.status = :status",
			expectedArgs: map[string]any{"status": "pending"},
		},
		{
			name:         "arg name keeps update values apart",
			filter:       dto.Filter{ArgName: "current_status", Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
			expectedSQL:  "status = :current_status",
			expectedArgs: map[string]any{"current_status": "pending"},
		},
		{
			name:         "strictly greater",
			filter:       dto.Filter{Field: "expired_at", Value: 10, Operator: dto.FilterOperatorGreater},
			expectedSQL:  "expired_at > :expired_at",
			expectedArgs: map[string]any{"expired_at": 10},
		},
		{
			name:         "strictly less",
			filter:       dto.Filter{Field: "expired_at", Value: 10, Operator: dto.FilterOperatorLess},
			expectedSQL:  "expired_at < :expired_at",
			expectedArgs: map[string]any{"expired_at": 10},
		},
		{
			name:         "in slice",
			filter:       dto.Filter{Field: "status", Value: []string{"BO", "CI"}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "status IN (:status_0, :status_1)",
			expectedArgs: map[string]any{"status_0": "BO", "status_1": "CI"},
		},
		{
			name:         "in empty slice matches nothing",
			filter:       dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			expectedSQL:  "FALSE",
			expectedArgs: map[string]any{},
		},
		{
			name:         "like is case insensitive",
			filter:       dto.Filter{Field: "name", Value: "Vip", Operator: dto.FilterOperatorLike, Table: "rooms"},
			expectedSQL:  "LOWER(rooms.name) LIKE LOWER(:name)",
			expectedArgs: map[string]any{"name": "%Vip%"},
		},
		{
			name:         "like without a term is dropped",
			filter:       dto.Filter{Field: "name", Value: "", Operator: dto.FilterOperatorLike},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
		{
			name:         "is null",
			filter:       dto.Filter{Field: "converted_at", Operator: dto.FilterIsNull},
			expectedSQL:  "converted_at IS NULL",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.expectedSQL, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "store_id", Value: "store-1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "expired_at", Operator: dto.FilterIsNull},
					dto.Filter{Field: "expired_at", Value: 5, Operator: dto.FilterOperatorGreater},
				},
			},
		},
	}

	query, args := group.GetWhereClause()

	assert.Equal(t, "(store_id = :store_id AND (expired_at IS NULL OR expired_at > :expired_at))", query)
	assert.Equal(t, map[string]any{"store_id": "store-1", "expired_at": 5}, args)

	empty := dto.FilterGroup{}
	query, _ = empty.GetWhereClause()
	assert.Empty(t, query)
}

func TestFilterGroup_SkipsEmptyConditions(t *testing.T) {
	group := dto.And(
		dto.Filter{Field: "name", Value: "", Operator: dto.FilterOperatorLike},
		"ignored",
	)
	group.Add(dto.Filter{Field: "store_id", Value: "store-1", Operator: dto.FilterOperatorEq})

	query, args := group.GetWhereClause()

	assert.Equal(t, "(store_id = :store_id)", query)
	assert.Equal(t, map[string]any{"store_id": "store-1"}, args)
}
