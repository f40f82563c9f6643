package vectordb

import (
	"strconv"

	"commerce-agent-be/pkg/store"
)

// normalizeProduct is the single construction site for the canonical
// product shape. Every retrieval path goes through it so text and image
// hits carry identical fields.
func normalizeProduct(props map[string]interface{}) store.Product {
	return store.Product{
		Name:          asString(props["product_name"]),
		Description:   asString(props["description"]),
		Price:         asString(props["price"]),
		URL:           asString(props["url"]),
		ImageURL:      asString(props["image_url"]),
		ReviewCount:   asString(props["review_count"]),
		RatingOverall: asString(props["rating_overall"]),
		ReviewsJSON:   asString(props["reviews_json"]),
	}
}

// asString renders a GraphQL property value as text. Numeric properties
// (review_count, rating_overall) arrive as float64 from the JSON decoder.
func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
