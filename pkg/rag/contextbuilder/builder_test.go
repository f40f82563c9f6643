package contextbuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"commerce-agent-be/pkg/store"
)

func TestBuildEmptyList(t *testing.T) {
	assert.Equal(t, EmptyContext, Build(nil, DefaultMaxReviewsChars))
	assert.Equal(t, EmptyContext, Build([]store.Product{}, DefaultMaxReviewsChars))
}

func TestBuildIndexesInInputOrder(t *testing.T) {
	products := []store.Product{
		{Name: "Alpha Buds", Price: "$19"},
		{Name: "Beta Cans", Price: "$99"},
	}

	out := Build(products, DefaultMaxReviewsChars)

	assert.Contains(t, out, "1. Alpha Buds $19")
	assert.Contains(t, out, "2. Beta Cans $99")
	assert.Less(t, strings.Index(out, "Alpha Buds"), strings.Index(out, "Beta Cans"))
}

func TestBuildIncludesProductFields(t *testing.T) {
	products := []store.Product{{
		Name:          "Alpha Buds",
		Price:         "$19",
		Description:   "tiny earbuds",
		URL:           "https://shop.example/alpha",
		RatingOverall: "4.5",
		ReviewCount:   "231",
		ReviewsJSON:   `[{"text":"great"}]`,
	}}

	out := Build(products, DefaultMaxReviewsChars)

	assert.Contains(t, out, "Rating: 4.5 (231)")
	assert.Contains(t, out, "tiny earbuds")
	assert.Contains(t, out, "https://shop.example/alpha")
	assert.Contains(t, out, `[{"text":"great"}]`)
}

func TestBuildTruncatesOversizedReviews(t *testing.T) {
	reviews := strings.Repeat("x", 2500)
	products := []store.Product{{Name: "Alpha", ReviewsJSON: reviews}}

	out := Build(products, 2000)

	assert.Contains(t, out, "...(truncated)")
	assert.NotContains(t, out, reviews)
	assert.Contains(t, out, strings.Repeat("x", 2000))
}

func TestBuildPassesReviewsAtBudgetUnmodified(t *testing.T) {
	reviews := strings.Repeat("y", 2000)
	products := []store.Product{{Name: "Alpha", ReviewsJSON: reviews}}

	out := Build(products, 2000)

	assert.Contains(t, out, reviews)
	assert.NotContains(t, out, "...(truncated)")
}
