package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reliefconnect-ai-be/internal/constant"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/pkg/llm"
	"reliefconnect-ai-be/pkg/search"
	"reliefconnect-ai-be/pkg/store"
)

// stage is one step of the product pipeline. Stages read and mutate the
// conversation; rawQuery is the user's utterance without history context.
type stage func(ctx context.Context, conv *store.Conversation, rawQuery string) error

// ProductPipeline turns a user query into a product recommendation:
// classify the intent, search the catalog, summarize the results.
// Stages run strictly in order and the first error aborts the run.
type ProductPipeline struct {
	llmProvider    llm.LLMProvider
	searchProvider search.SearchProvider
	log            logger.ILogger
}

func NewProductPipeline(llmProvider llm.LLMProvider, searchProvider search.SearchProvider, log logger.ILogger) *ProductPipeline {
	return &ProductPipeline{
		llmProvider:    llmProvider,
		searchProvider: searchProvider,
		log:            log,
	}
}

// Run executes one turn. conv.Query must already hold the context-prefixed
// query (see store.Conversation.EffectiveQuery); rawQuery is what the user
// actually typed and is what lands in history.
func (p *ProductPipeline) Run(ctx context.Context, conv *store.Conversation, rawQuery string) error {
	stages := []stage{p.classify, p.search, p.summarize}
	for _, s := range stages {
		if err := s(ctx, conv, rawQuery); err != nil {
			return err
		}
	}
	return nil
}

func (p *ProductPipeline) classify(ctx context.Context, conv *store.Conversation, rawQuery string) error {
	// Per-turn fields are reset here so a stale Products slice from the
	// previous turn can never leak into this one.
	conv.Intent = ""
	conv.Products = nil
	conv.Response = ""

	prompt := fmt.Sprintf(constant.ClassifyIntentPrompt, conv.Query)
	raw, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		return fmt.Errorf("intent classification failed: %w", err)
	}

	conv.Intent = normalizeIntent(raw)
	conv.AppendUserLine(rawQuery)

	p.log.Debug("ProductPipeline", "intent classified", map[string]interface{}{
		"session_id": conv.SessionID,
		"intent":     conv.Intent,
	})
	return nil
}

// normalizeIntent coerces model output to one of the known labels. Models
// occasionally answer "Label: product" or add trailing punctuation, so the
// last recognized label in the reply wins; anything else maps to other.
func normalizeIntent(raw string) string {
	known := map[string]bool{
		store.IntentProduct: true,
		store.IntentOrder:   true,
		store.IntentFraud:   true,
		store.IntentOther:   true,
	}

	intent := store.IntentOther
	for _, field := range strings.Fields(strings.ToLower(raw)) {
		field = strings.Trim(field, ".,:;\"'`")
		if known[field] {
			intent = field
		}
	}
	return intent
}

func (p *ProductPipeline) search(ctx context.Context, conv *store.Conversation, _ string) error {
	if conv.Intent != store.IntentProduct {
		return nil
	}

	candidates, err := p.searchProvider.Query(ctx, conv.Query, constant.SearchTopK)
	if err != nil {
		return fmt.Errorf("product search failed: %w", err)
	}

	conv.Products = search.FilterByDistance(candidates, constant.DistanceThreshold)

	p.log.Debug("ProductPipeline", "catalog searched", map[string]interface{}{
		"session_id": conv.SessionID,
		"retrieved":  len(candidates),
		"kept":       len(conv.Products),
	})
	return nil
}

func (p *ProductPipeline) summarize(ctx context.Context, conv *store.Conversation, rawQuery string) error {
	switch {
	case conv.Intent != store.IntentProduct:
		conv.Response = constant.FallbackNonProductMessage
	case len(conv.Products) == 0:
		conv.Response = constant.FallbackNoMatchesMessage
	default:
		productsJSON, err := json.MarshalIndent(conv.Products, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal candidates: %w", err)
		}

		prompt := fmt.Sprintf(constant.SummarizeProductsPrompt, rawQuery, string(productsJSON))
		response, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
		if err != nil {
			return fmt.Errorf("product summarization failed: %w", err)
		}
		conv.Response = strings.TrimSpace(response)
	}

	conv.AppendBotLine(conv.Response)
	return nil
}
