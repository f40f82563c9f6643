package dto

import (
	"commerce-agent-be/pkg/store"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type ImageRequest struct {
	SessionID string `json:"session_id"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageB64  string `json:"image_b64,omitempty"`
	Query     string `json:"query,omitempty"`
}

type CartAddRequest struct {
	SessionID string         `json:"session_id"`
	Item      string         `json:"item,omitempty"`    // "#2" or product name
	Product   *store.Product `json:"product,omitempty"` // direct product payload
}

type CartRemoveRequest struct {
	SessionID string `json:"session_id"`
	Item      string `json:"item"` // "#1" or name substring
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// ChatResponse is the shared answer envelope for every chat, image and
// cart operation.
type ChatResponse struct {
	Answer   string          `json:"answer"`
	Products []store.Product `json:"products"`
	Cart     []store.Product `json:"cart"`
}

type ServerStatusResponse struct {
	Server string `json:"server"`
}

type HealthResponse struct {
	OK              bool   `json:"ok"`
	VectorDBVersion string `json:"vector_db_version"`
	Count           int64  `json:"count"`
}
