package contextbuilder

import (
	"fmt"
	"strings"

	"commerce-agent-be/pkg/store"
)

// DefaultMaxReviewsChars bounds the opaque reviews payload per product so
// oversized review dumps cannot blow the answering model's token budget.
const DefaultMaxReviewsChars = 2000

// EmptyContext is emitted when no product data is available for grounding.
const EmptyContext = "(no product data retrieved)"

const truncationMarker = "...(truncated)"

// Build renders the retrieved products into the grounding block handed to
// the answering model. Products are 1-indexed in input order; the same
// index is what "#N" references resolve against, so ordering here must
// match the session's last-results list exactly.
func Build(products []store.Product, maxReviewsChars int) string {
	if len(products) == 0 {
		return EmptyContext
	}
	if maxReviewsChars <= 0 {
		maxReviewsChars = DefaultMaxReviewsChars
	}

	blocks := make([]string, 0, len(products))
	for i, p := range products {
		reviews := p.ReviewsJSON
		if len(reviews) > maxReviewsChars {
			reviews = reviews[:maxReviewsChars] + truncationMarker
		}

		var b strings.Builder
		b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, p.Name, p.Price))
		b.WriteString(fmt.Sprintf("   Rating: %s (%s)\n", p.RatingOverall, p.ReviewCount))
		b.WriteString(fmt.Sprintf("   %s\n", p.Description))
		b.WriteString(fmt.Sprintf("   %s\n", p.URL))
		b.WriteString("   reviews_json (parse this JSON array yourself):\n")
		b.WriteString(fmt.Sprintf("   ```json\n%s\n```", reviews))
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}
