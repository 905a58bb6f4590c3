package searchpage

import (
	"avacasa/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageLabels(c *PaginationControl) []string {
	var out []string
	for _, item := range c.Items {
		if item.Ellipsis {
			out = append(out, "...")
			continue
		}
		label := ""
		if item.Current {
			label = "*"
		}
		out = append(out, label+itoa(item.Number))
	}
	return out
}

func itoa(n int) string {
	return formatNumber(float64(n))
}

func TestBuildPaginationControl_Window(t *testing.T) {
	cases := []struct {
		name  string
		page  int
		pages int
		want  []string
	}{
		{"single", 1, 1, []string{"*1"}},
		{"first of many", 1, 10, []string{"*1", "2", "...", "10"}},
		{"middle", 5, 10, []string{"1", "...", "4", "*5", "6", "...", "10"}},
		{"near start", 3, 10, []string{"1", "2", "*3", "4", "...", "10"}},
		{"last", 10, 10, []string{"1", "...", "9", "*10"}},
		{"beyond last is clamped", 14, 10, []string{"1", "...", "9", "*10"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := domain.PaginationMeta{Page: tc.page, Limit: 12, Total: tc.pages * 12, Pages: tc.pages}
			c := BuildPaginationControl(&meta)
			require.NotNil(t, c)
			assert.Equal(t, tc.want, pageLabels(c))
			for _, item := range c.Items {
				if !item.Ellipsis {
					assert.GreaterOrEqual(t, item.Number, 1)
					assert.LessOrEqual(t, item.Number, tc.pages)
				}
			}
		})
	}
}

func TestBuildPaginationControl_PrevNext(t *testing.T) {
	meta := domain.PaginationMeta{Page: 1, Pages: 3}
	c := BuildPaginationControl(&meta)
	assert.False(t, c.PrevEnabled)
	assert.True(t, c.NextEnabled)

	meta.Page = 3
	c = BuildPaginationControl(&meta)
	assert.True(t, c.PrevEnabled)
	assert.False(t, c.NextEnabled)

	assert.Nil(t, BuildPaginationControl(nil))
	assert.Nil(t, BuildPaginationControl(&domain.PaginationMeta{Page: 1, Pages: 0}))
}
