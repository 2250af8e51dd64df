package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{})

		assert.Equal(t, DefaultLimit, filter.Limit)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 0, filter.Offset)
		assert.True(t, filter.WithPagination)
		assert.Empty(t, filter.Filter)
		assert.Empty(t, filter.Sort)
	})

	t.Run("limit is capped", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{"limit": {"9999"}})
		assert.Equal(t, MaxLimit, filter.Limit)
	})

	t.Run("invalid limit falls back to default", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{"limit": {"abc"}})
		assert.Equal(t, DefaultLimit, filter.Limit)
	})

	t.Run("offset derives from page", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"25"}})
		assert.Equal(t, 50, filter.Offset)
	})

	t.Run("explicit offset wins over page", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"25"}, "offset": {"10"}})
		assert.Equal(t, 10, filter.Offset)
	})

	t.Run("search, filters and sorts", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{
			"search":            {"ventilator"},
			"filter[status]":    {"operational"},
			"filter[location]":  {""},
			"sort[name]":        {"asc"},
			"sort[created_at]":  {"DESC"},
			"sort[description]": {"sideways"},
		})

		assert.Equal(t, "ventilator", filter.Search)
		assert.Equal(t, map[string]interface{}{"status": "operational"}, filter.Filter)
		assert.Equal(t, map[string]string{"name": "asc", "created_at": "desc"}, filter.Sort)
	})

	t.Run("pagination can be switched off", func(t *testing.T) {
		filter := ParseFilterFromQuery(url.Values{"withPagination": {"false"}})
		assert.False(t, filter.WithPagination)
	})
}
