package service

import (
	"context"

	"github.com/google/uuid"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/logger"
	"commerce-agent-be/internal/repository/memory"
	"commerce-agent-be/pkg/cart"
	"commerce-agent-be/pkg/store"
)

// ICartService defines the cart operation surface. Every operation
// succeeds at the HTTP level; misses come back as guidance text.
type ICartService interface {
	Add(ctx context.Context, request *dto.CartAddRequest) *dto.ChatResponse
	View(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse
	Remove(ctx context.Context, request *dto.CartRemoveRequest) *dto.ChatResponse
	Checkout(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse
}

type cartService struct {
	resolver    *cart.Resolver
	sessionRepo *memory.SessionRepository
	log         logger.ILogger
	memoryTurns int
}

func NewCartService(resolver *cart.Resolver, sessionRepo *memory.SessionRepository, log logger.ILogger, memoryTurns int) ICartService {
	return &cartService{
		resolver:    resolver,
		sessionRepo: sessionRepo,
		log:         log,
		memoryTurns: memoryTurns,
	}
}

func (s *cartService) Add(ctx context.Context, request *dto.CartAddRequest) *dto.ChatResponse {
	st := s.sessionRepo.GetOrCreate(request.SessionID)

	var msg string
	if request.Product != nil {
		msg = s.resolver.AddProduct(st, *request.Product)
	} else {
		msg = s.resolver.Add(ctx, st, request.Item)
	}

	s.recordTurn(st, "add "+request.Item, msg)
	return s.respond(st, msg)
}

func (s *cartService) View(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse {
	st := s.sessionRepo.GetOrCreate(request.SessionID)
	msg := s.resolver.View(st)
	s.recordTurn(st, "view cart", msg)
	return s.respond(st, msg)
}

func (s *cartService) Remove(ctx context.Context, request *dto.CartRemoveRequest) *dto.ChatResponse {
	st := s.sessionRepo.GetOrCreate(request.SessionID)
	msg := s.resolver.Remove(st, request.Item)
	s.recordTurn(st, "remove "+request.Item, msg)
	return s.respond(st, msg)
}

func (s *cartService) Checkout(ctx context.Context, request *dto.SessionRequest) *dto.ChatResponse {
	st := s.sessionRepo.GetOrCreate(request.SessionID)
	before := len(st.Cart)
	msg := s.resolver.Checkout(st)
	s.recordTurn(st, "checkout", msg)
	s.log.Info("cart", "checkout", map[string]interface{}{
		"session_id": st.ID,
		"items":      before,
	})
	return s.respond(st, msg)
}

func (s *cartService) recordTurn(st *store.Session, userContent, assistantContent string) {
	st.History = append(st.History,
		store.Message{ID: uuid.NewString(), Role: store.RoleUser, Content: userContent},
		store.Message{ID: uuid.NewString(), Role: store.RoleAssistant, Content: assistantContent},
	)
	st.TrimHistory(s.memoryTurns)
	s.sessionRepo.Save(st)
}

func (s *cartService) respond(st *store.Session, msg string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Answer:   msg,
		Products: st.LastResults,
		Cart:     st.Cart,
	}
}
