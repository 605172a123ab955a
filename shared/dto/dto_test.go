package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookit/shared/constant"
	"bookit/shared/dto"
	"bookit/shared/model"
	"bookit/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	created := time.Date(2030, 1, 10, 3, 0, 0, 0, time.UTC)

	t.Run("untouched row hides modification stamps", func(t *testing.T) {
		res := dto.Metadata{}
		res.FromModel(model.NewMetadata("staff-1", created))

		assert.Equal(t, timezone.Format(created, constant.DateFormat), res.CreatedAt)
		assert.Equal(t, "staff-1", res.CreatedBy)
		assert.Empty(t, res.ModifiedAt)
		assert.Empty(t, res.ModifiedBy)
	})

	t.Run("edited row", func(t *testing.T) {
		stamp := model.NewMetadata("staff-1", created)
		stamp.Touch("staff-2", created.Add(time.Hour))

		res := dto.Metadata{}
		res.FromModel(stamp)

		assert.Equal(t, timezone.Format(created.Add(time.Hour), constant.DateFormat), res.ModifiedAt)
		assert.Equal(t, "staff-2", res.ModifiedBy)
	})
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		paginate bool
		expected dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=Name&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "name", SortDir: dto.SortDirAsc},
		},
		{
			name:     "defaults when paginating",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "nothing without pagination",
			expected: dto.QueryParams{},
		},
		{
			name:     "garbage numbers fall back",
			query:    "page=abc&limit=-10",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is clamped",
			query:    "limit=5000",
			paginate: true,
			expected: dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown direction ignored",
			query:    "sort_by=booking_date&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "booking_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.paginate)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_WithDefaultSort(t *testing.T) {
	params := dto.QueryParams{SortBy: "name"}
	params.WithDefaultSort("booking_date", dto.SortDirDesc)

	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, dto.SortDirDesc, params.SortDir)
	assert.True(t, params.Sorted())
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 5, Limit: 10}.Offset())
}
