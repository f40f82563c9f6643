package store

// Product is the canonical record shape every retrieval path normalizes into,
// regardless of whether the hit came from a text or an image query.
type Product struct {
	Name          string `json:"product_name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	URL           string `json:"url"`
	ImageURL      string `json:"image_url"`
	ReviewCount   string `json:"review_count"`
	RatingOverall string `json:"rating_overall"`
	// ReviewsJSON is an opaque JSON-encoded array of review objects.
	// Consumers parse it themselves.
	ReviewsJSON string `json:"reviews_json"`
}

// Message is a single role-tagged conversation entry.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // RoleUser | RoleAssistant
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session represents the active user session state in memory.
// Each session exclusively owns its history, last results and cart;
// products are value-copied between LastResults and Cart.
type Session struct {
	ID          string    `json:"id"`
	History     []Message `json:"history"`
	LastResults []Product `json:"last_results"`
	Cart        []Product `json:"cart"`
}

// NewSession returns an empty session for the given id.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		History:     make([]Message, 0),
		LastResults: make([]Product, 0),
		Cart:        make([]Product, 0),
	}
}

// SetLastResults replaces the last-results list with a copy of products.
func (s *Session) SetLastResults(products []Product) {
	s.LastResults = make([]Product, len(products))
	copy(s.LastResults, products)
}

// TrimHistory evicts the oldest messages (FIFO) until the history fits
// within maxMessages. The cap is measured in messages, not turns.
func (s *Session) TrimHistory(maxMessages int) {
	if maxMessages <= 0 {
		s.History = s.History[:0]
		return
	}
	if excess := len(s.History) - maxMessages; excess > 0 {
		s.History = append(s.History[:0], s.History[excess:]...)
	}
}

// RecentHistory returns up to the last n messages, oldest first.
func (s *Session) RecentHistory(n int) []Message {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
