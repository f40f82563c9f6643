package gate

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"commerce-agent-be/pkg/llm"
	"commerce-agent-be/pkg/store"
)

// decision is the strict output contract for the classifier. RAG is a
// pointer so a reply that parses but omits the key is distinguishable
// from an explicit false.
type decision struct {
	RAG *bool `json:"rag"`
}

// Gate is the LLM-backed binary classifier deciding, per turn, whether
// fresh product retrieval is warranted.
type Gate struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func New(llmProvider llm.LLMProvider, logger *log.Logger) *Gate {
	return &Gate{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

const classifierPrompt = `Decide if we should run product retrieval (RAG) for the next user turn.
Respond ONLY with strict JSON like {"rag": true} or {"rag": false}.
Heuristics (use your judgment, not keywords):
- RAG = TRUE when the user asks to discover/find/compare products, wants reviews/specs/prices/alternatives, YES WHEN THE USER WANTS TO KNOW MORE ABOUT THE PRODUCT
- RAG = FALSE when it's smalltalk, cart-only ops (add/remove/checkout/view), or a follow-up that does not require new items.
- If uncertain, wait for the conversation to flow, if its the same item as previously discussed, then a new RAG pull is not required.`

// ShouldRetrieve classifies the current turn. Any classifier failure,
// missing JSON or decode failure resolves to true: over-retrieving is
// cheaper for a shopping assistant than answering on stale context.
func (g *Gate) ShouldRetrieve(ctx context.Context, query string, recentHistory []store.Message) bool {
	messages := make([]llm.Message, 0, len(recentHistory)+2)
	messages = append(messages, llm.Message{Role: "system", Content: classifierPrompt})
	// keep it tiny to avoid drift
	for _, m := range recentHistory {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: "User: " + query + "\nReturn JSON now.",
	})

	response, err := g.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(100),
	)
	if err != nil {
		g.logger.Printf("[GATE] classifier call failed, defaulting to retrieve: %v", err)
		return true
	}

	d, err := parseDecision(response)
	if err != nil {
		g.logger.Printf("[GATE] classifier output unparseable, defaulting to retrieve: %v", err)
		return true
	}

	g.logger.Printf("[GATE] rag=%v", *d.RAG)
	return *d.RAG
}

var (
	errNoJSON     = errors.New("no JSON found in response")
	errMissingKey = errors.New(`response JSON has no "rag" key`)
)

func parseDecision(response string) (*decision, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, errNoJSON
	}
	var d decision
	if err := json.Unmarshal([]byte(jsonContent), &d); err != nil {
		return nil, err
	}
	if d.RAG == nil {
		return nil, errMissingKey
	}
	return &d, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}
