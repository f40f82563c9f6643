package response

import (
	"context"
	"log"
	"strings"

	"commerce-agent-be/pkg/llm"
	"commerce-agent-be/pkg/store"
)

// Generator produces the assistant reply from the grounding context,
// bounded history and current query.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

const systemPersona = `You are Ruf AI, an e-shopping assistant.
You will explain about the product if required.
- Recommend strictly from the provided product data (do NOT invent items).
- If user mentions #2, it refers to the latest results list.
- Keep responses short; list top 3 unless asked otherwise. If uncertain, ask clarifying questions.
- You are a commerce focused agent, if you are asked any questions outside of this, you will let the user know what your purpose is.`

// Answer sends system persona + grounding context + history + query to the
// model. Unlike the retrieval gate there is no fallback here: an LLM
// failure propagates as a request failure.
func (g *Generator) Answer(ctx context.Context, groundingContext, query string, history []store.Message) (string, error) {
	system := systemPersona + "\n\nProduct data:\n" + groundingContext

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: query})

	answer, err := g.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.4),
		llm.WithMaxTokens(2048),
	)
	if err != nil {
		g.logger.Printf("[GENERATION] answer failed: %v", err)
		return "", err
	}

	g.logger.Printf("[GENERATION] answer generated (history=%d, context=%d chars)",
		len(history), len(groundingContext))

	return strings.TrimSpace(answer), nil
}
