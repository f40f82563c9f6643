package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/service"
	"commerce-agent-be/pkg/store"
)

type fakeChatService struct {
	chatRes  *dto.ChatResponse
	imageErr error
}

func (f *fakeChatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	return f.chatRes, nil
}

func (f *fakeChatService) Image(ctx context.Context, request *dto.ImageRequest) (*dto.ChatResponse, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return f.chatRes, nil
}

func (f *fakeChatService) ResetSession(sessionID string) *dto.ChatResponse {
	return &dto.ChatResponse{Answer: "Session reset.", Products: []store.Product{}, Cart: []store.Product{}}
}

type fakeCartService struct {
	res *dto.ChatResponse
}

func (f *fakeCartService) Add(ctx context.Context, request *dto.CartAddRequest) *dto.ChatResponse {
	return f.res
}

func (f *fakeCartService) View(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse {
	return f.res
}

func (f *fakeCartService) Remove(ctx context.Context, request *dto.CartRemoveRequest) *dto.ChatResponse {
	return f.res
}

func (f *fakeCartService) Checkout(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse {
	return f.res
}

type fakeIndex struct {
	count      int64
	version    string
	countErr   error
	versionErr error
}

func (f *fakeIndex) TotalCount(ctx context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeIndex) ServerVersion(ctx context.Context) (string, error) {
	return f.version, f.versionErr
}

func newTestApp(controllers ...interface{ RegisterRoutes(fiber.Router) }) *fiber.App {
	app := fiber.New()
	for _, c := range controllers {
		c.RegisterRoutes(app)
	}
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestChatEndpoint(t *testing.T) {
	svc := &fakeChatService{chatRes: &dto.ChatResponse{
		Answer:   "Here you go.",
		Products: []store.Product{{Name: "Acme Headphones"}},
		Cart:     []store.Product{},
	}}
	app := newTestApp(NewChatController(svc))

	res := postJSON(t, app, "/chat", dto.ChatRequest{SessionID: "s1", Query: "headphones"})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body dto.ChatResponse
	decodeBody(t, res, &body)
	assert.Equal(t, "Here you go.", body.Answer)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Acme Headphones", body.Products[0].Name)
}

func TestChatEndpointRejectsMalformedBody(t *testing.T) {
	app := newTestApp(NewChatController(&fakeChatService{}))

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestImageEndpointMissingImage(t *testing.T) {
	app := newTestApp(NewChatController(&fakeChatService{imageErr: service.ErrMissingImage}))

	res := postJSON(t, app, "/image", dto.ImageRequest{SessionID: "s1"})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestImageEndpointUpstreamFailure(t *testing.T) {
	app := newTestApp(NewChatController(&fakeChatService{imageErr: errors.New("index down")}))

	res := postJSON(t, app, "/image", dto.ImageRequest{SessionID: "s1", ImageB64: "AAAA"})

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestSessionResetEndpoint(t *testing.T) {
	app := newTestApp(NewChatController(&fakeChatService{}))

	res := postJSON(t, app, "/session/reset", dto.SessionRequest{SessionID: "s1"})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body dto.ChatResponse
	decodeBody(t, res, &body)
	assert.Equal(t, "Session reset.", body.Answer)
	assert.Empty(t, body.Cart)
}

func TestCartEndpointsAlwaysRespondOK(t *testing.T) {
	svc := &fakeCartService{res: &dto.ChatResponse{
		Answer: "🛒 Your cart is empty.",
		Cart:   []store.Product{},
	}}
	app := newTestApp(NewCartController(svc))

	for _, path := range []string{"/cart/add", "/cart/view", "/cart/remove", "/cart/checkout"} {
		res := postJSON(t, app, path, dto.SessionRequest{SessionID: "s1"})
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}
}

func TestCartViewEnvelope(t *testing.T) {
	svc := &fakeCartService{res: &dto.ChatResponse{
		Answer:   "🛒 Your cart:\n1. Acme Headphones ($49) http://x",
		Products: []store.Product{{Name: "Acme Headphones"}},
		Cart:     []store.Product{{Name: "Acme Headphones"}},
	}}
	app := newTestApp(NewCartController(svc))

	res := postJSON(t, app, "/cart/view", dto.SessionRequest{SessionID: "s1"})

	var body dto.ChatResponse
	decodeBody(t, res, &body)
	assert.Contains(t, body.Answer, "Acme Headphones")
	assert.Len(t, body.Cart, 1)
}

func TestAwakeEndpoint(t *testing.T) {
	app := newTestApp(NewSystemController(&fakeIndex{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body dto.ServerStatusResponse
	decodeBody(t, res, &body)
	assert.Equal(t, "Active", body.Server)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(NewSystemController(&fakeIndex{count: 1200, version: "1.27.0"}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body dto.HealthResponse
	decodeBody(t, res, &body)
	assert.True(t, body.OK)
	assert.Equal(t, "1.27.0", body.VectorDBVersion)
	assert.Equal(t, int64(1200), body.Count)
}

func TestHealthEndpointIndexUnavailable(t *testing.T) {
	app := newTestApp(NewSystemController(&fakeIndex{countErr: errors.New("connection refused")}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
