package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/internal/repository/memory"
	"commerce-agent-be/pkg/store"
	"commerce-agent-be/pkg/vectordb"
)

// ErrMissingImage is returned when an image request carries neither an
// inline payload nor a URL.
var ErrMissingImage = errors.New("provide image_b64 (preferred) or image_url")

// RetrievalGate decides per turn whether fresh product retrieval is needed.
type RetrievalGate interface {
	ShouldRetrieve(ctx context.Context, query string, recentHistory []store.Message) bool
}

// ProductSearcher is the vector index collaborator surface the chat
// pipeline consumes.
type ProductSearcher interface {
	SearchText(ctx context.Context, query string, k int) ([]store.Product, error)
	SearchImage(ctx context.Context, image string, k int) ([]store.Product, error)
}

// AnswerGenerator turns grounding context + history + query into the reply.
type AnswerGenerator interface {
	Answer(ctx context.Context, groundingContext, query string, history []store.Message) (string, error)
}

// ContextBuilder renders retrieved products into the grounding block.
type ContextBuilder func(products []store.Product, maxReviewsChars int) string

// IChatService defines the conversational pipeline surface
type IChatService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	Image(ctx context.Context, request *dto.ImageRequest) (*dto.ChatResponse, error)
	ResetSession(sessionID string) *dto.ChatResponse
}

// chatService coordinates the per-turn pipeline: retrieval gate →
// (conditional) retrieval → context assembly → answer → session update.
type chatService struct {
	gate         RetrievalGate
	searcher     ProductSearcher
	generator    AnswerGenerator
	buildContext ContextBuilder
	sessionRepo  *memory.SessionRepository
	log          logger.ILogger

	memoryTurns     int
	searchLimit     int
	maxReviewsChars int
}

func NewChatService(
	gate RetrievalGate,
	searcher ProductSearcher,
	generator AnswerGenerator,
	buildContext ContextBuilder,
	sessionRepo *memory.SessionRepository,
	log logger.ILogger,
	memoryTurns, searchLimit, maxReviewsChars int,
) IChatService {
	return &chatService{
		gate:            gate,
		searcher:        searcher,
		generator:       generator,
		buildContext:    buildContext,
		sessionRepo:     sessionRepo,
		log:             log,
		memoryTurns:     memoryTurns,
		searchLimit:     searchLimit,
		maxReviewsChars: maxReviewsChars,
	}
}

// Chat handles a text turn.
func (cs *chatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	st := cs.sessionRepo.GetOrCreate(request.SessionID)
	query := strings.TrimSpace(request.Query)

	doRAG := cs.gate.ShouldRetrieve(ctx, query, st.History)

	var products []store.Product
	if doRAG {
		hits, err := cs.searcher.SearchText(ctx, query, cs.searchLimit)
		if err != nil {
			return nil, fmt.Errorf("product retrieval failed: %w", err)
		}
		products = hits
		if len(products) > 0 {
			st.SetLastResults(products)
		}
	} else {
		// Keep using previous results so follow-ups like "show me the
		// reviews" stay grounded without a fresh pull.
		products = append([]store.Product(nil), st.LastResults...)
	}

	groundingContext := cs.buildContext(products, cs.maxReviewsChars)
	answer, err := cs.generator.Answer(ctx, groundingContext, query, st.RecentHistory(cs.memoryTurns-2))
	if err != nil {
		return nil, err
	}

	cs.appendTurn(st, query, answer)
	cs.log.Info("chat", "turn completed", map[string]interface{}{
		"session_id": st.ID,
		"rag":        doRAG,
		"products":   len(products),
	})

	return &dto.ChatResponse{Answer: answer, Products: products, Cart: st.Cart}, nil
}

// Image handles an image similarity turn. Inline base64 is preferred;
// data URLs are stripped to their payload, remote URLs are fetched and
// encoded. Retrieval always runs, no gate.
func (cs *chatService) Image(ctx context.Context, request *dto.ImageRequest) (*dto.ChatResponse, error) {
	st := cs.sessionRepo.GetOrCreate(request.SessionID)

	var b64 string
	switch {
	case request.ImageB64 != "":
		b64 = request.ImageB64
		if strings.HasPrefix(b64, "data:") {
			stripped, err := vectordb.Base64FromDataURL(b64)
			if err != nil {
				return nil, err
			}
			b64 = stripped
		}
	case request.ImageURL != "":
		fetched, err := vectordb.FetchImageBase64(ctx, request.ImageURL)
		if err != nil {
			return nil, err
		}
		b64 = fetched
	default:
		return nil, ErrMissingImage
	}

	products, err := cs.searcher.SearchImage(ctx, b64, cs.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("image retrieval failed: %w", err)
	}
	st.SetLastResults(products)

	query := request.Query
	if query == "" {
		query = "Find similar products"
	}

	groundingContext := cs.buildContext(products, cs.maxReviewsChars)
	answer, err := cs.generator.Answer(ctx, groundingContext, query, nil)
	if err != nil {
		return nil, err
	}

	// History keeps the shorter placeholder when no query was given.
	historyQuery := request.Query
	if historyQuery == "" {
		historyQuery = "find similar"
	}
	cs.appendTurn(st, "[image] "+historyQuery, answer)
	cs.log.Info("chat", "image turn completed", map[string]interface{}{
		"session_id": st.ID,
		"products":   len(products),
	})

	return &dto.ChatResponse{Answer: answer, Products: products, Cart: st.Cart}, nil
}

// ResetSession replaces the session with a fresh empty one.
func (cs *chatService) ResetSession(sessionID string) *dto.ChatResponse {
	cs.sessionRepo.Reset(sessionID)
	return &dto.ChatResponse{
		Answer:   "Session reset.",
		Products: []store.Product{},
		Cart:     []store.Product{},
	}
}

func (cs *chatService) appendTurn(st *store.Session, userContent, assistantContent string) {
	st.History = append(st.History,
		store.Message{ID: uuid.NewString(), Role: store.RoleUser, Content: userContent},
		store.Message{ID: uuid.NewString(), Role: store.RoleAssistant, Content: assistantContent},
	)
	st.TrimHistory(cs.memoryTurns)
	cs.sessionRepo.Save(st)
}
