package vectordb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"commerce-agent-be/pkg/store"
)

// Config holds the connection settings for the Weaviate cluster.
type Config struct {
	Host         string // e.g. "my-cluster.weaviate.network"
	Scheme       string // "https" or "http"
	APIKey       string
	CohereAPIKey string // forwarded so the cluster can vectorize queries
	ClassName    string // defaults to "Product"
	TargetVector string // defaults to "mm_vec"
}

// Client wraps the Weaviate GraphQL API behind the product retrieval
// operations the assistant needs. Results come back similarity-ranked
// by the index; no re-ranking happens here.
type Client struct {
	client       *weaviate.Client
	className    string
	targetVector string
}

var returnFields = []graphql.Field{
	{Name: "product_name"},
	{Name: "description"},
	{Name: "price"},
	{Name: "url"},
	{Name: "image_url"},
	{Name: "review_count"},
	{Name: "rating_overall"},
	{Name: "reviews_json"},
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.ClassName == "" {
		cfg.ClassName = "Product"
	}
	if cfg.TargetVector == "" {
		cfg.TargetVector = "mm_vec"
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}

	wcfg := weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
	}
	if cfg.CohereAPIKey != "" {
		wcfg.Headers = map[string]string{"X-Cohere-Api-Key": cfg.CohereAPIKey}
	}

	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %w", err)
	}

	return &Client{
		client:       client,
		className:    cfg.ClassName,
		targetVector: cfg.TargetVector,
	}, nil
}

var (
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// SearchText runs a near-text similarity query. A first pass returning
// zero hits is retried once with a punctuation-normalized query when the
// normalized form differs from the original.
func (c *Client) SearchText(ctx context.Context, query string, k int) ([]store.Product, error) {
	products, err := c.nearText(ctx, query, k)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		normalized := nonAlnumPattern.ReplaceAllString(query, " ")
		normalized = strings.TrimSpace(multiSpacePattern.ReplaceAllString(normalized, " "))
		if normalized != "" && normalized != query {
			return c.nearText(ctx, normalized, k)
		}
	}
	return products, nil
}

// SearchImage runs a near-image similarity query against the same
// multimodal target vector. image is raw base64, no data-URL prefix.
func (c *Client) SearchImage(ctx context.Context, image string, k int) ([]store.Product, error) {
	nearImage := c.client.GraphQL().NearImageArgBuilder().
		WithImage(image).
		WithTargetVectors(c.targetVector)

	res, err := c.client.GraphQL().Get().
		WithClassName(c.className).
		WithFields(returnFields...).
		WithNearImage(nearImage).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near-image query failed: %w", err)
	}
	return c.parseGetResponse(res)
}

func (c *Client) nearText(ctx context.Context, query string, k int) ([]store.Product, error) {
	nearText := c.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query}).
		WithTargetVectors(c.targetVector)

	res, err := c.client.GraphQL().Get().
		WithClassName(c.className).
		WithFields(returnFields...).
		WithNearText(nearText).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("near-text query failed: %w", err)
	}
	return c.parseGetResponse(res)
}

func (c *Client) parseGetResponse(res *models.GraphQLResponse) ([]store.Product, error) {
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("weaviate query error: %s", res.Errors[0].Message)
	}

	products := make([]store.Product, 0)

	get, ok := res.Data["Get"].(map[string]interface{})
	if !ok {
		return products, nil
	}
	objects, ok := get[c.className].([]interface{})
	if !ok {
		return products, nil
	}
	for _, obj := range objects {
		props, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		products = append(products, normalizeProduct(props))
	}
	return products, nil
}

// TotalCount returns the number of objects in the product class.
func (c *Client) TotalCount(ctx context.Context) (int64, error) {
	meta := graphql.Field{
		Name:   "meta",
		Fields: []graphql.Field{{Name: "count"}},
	}
	res, err := c.client.GraphQL().Aggregate().
		WithClassName(c.className).
		WithFields(meta).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("aggregate query failed: %w", err)
	}
	if len(res.Errors) > 0 {
		return 0, fmt.Errorf("weaviate aggregate error: %s", res.Errors[0].Message)
	}

	agg, ok := res.Data["Aggregate"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected aggregate response shape")
	}
	rows, ok := agg[c.className].([]interface{})
	if !ok || len(rows) == 0 {
		return 0, fmt.Errorf("unexpected aggregate response shape")
	}
	row, ok := rows[0].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected aggregate response shape")
	}
	metaObj, ok := row["meta"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected aggregate response shape")
	}
	count, ok := metaObj["count"].(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregate response shape")
	}
	return int64(count), nil
}

// ServerVersion reports the Weaviate server version from its meta endpoint.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	meta, err := c.client.Misc().MetaGetter().Do(ctx)
	if err != nil {
		return "", fmt.Errorf("meta query failed: %w", err)
	}
	return meta.Version, nil
}
