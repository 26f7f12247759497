package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reliefconnect-ai-be/internal/constant"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/pkg/llm"
	"reliefconnect-ai-be/pkg/search"
	"reliefconnect-ai-be/pkg/store"
)

// fakeLLM routes prompts to canned responses by substring matching on the
// prompt templates, so one fake serves every stage.
type fakeLLM struct {
	intent     string
	summary    string
	generateFn func(prompt string) (string, error)
	prompts    []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.generateFn != nil {
		return f.generateFn(prompt)
	}
	if strings.Contains(prompt, "Classify the intent") {
		return f.intent, nil
	}
	return f.summary, nil
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var last string
	for _, m := range history {
		if m.Role == constant.ChatMessageRoleUser {
			last = m.Content
		}
	}
	return f.Generate(ctx, last, options...)
}

type fakeSearch struct {
	candidates []search.Candidate
	err        error
	queries    []string
}

func (f *fakeSearch) Query(_ context.Context, text string, _ int) ([]search.Candidate, error) {
	f.queries = append(f.queries, text)
	return f.candidates, f.err
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewZapLogger(t.TempDir()+"/test.log", false)
}

func TestProductPipelineFiltersByDistance(t *testing.T) {
	llmFake := &fakeLLM{intent: "product", summary: "Here is some water."}
	searchFake := &fakeSearch{candidates: []search.Candidate{
		{ID: "1", Document: "Bottled water 1L", Distance: 0.3},
		{ID: "2", Document: "Garden gnome", Distance: 1.2},
	}}

	p := NewProductPipeline(llmFake, searchFake, testLogger(t))
	conv := store.NewConversation("s1")
	conv.Query = "I need water"

	if err := p.Run(context.Background(), conv, "I need water"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(conv.Products) != 1 {
		t.Fatalf("got %d products, want 1", len(conv.Products))
	}
	if conv.Products[0].ID != "1" {
		t.Errorf("kept wrong candidate: %+v", conv.Products[0])
	}
	if conv.Response != "Here is some water." {
		t.Errorf("response = %q", conv.Response)
	}
}

func TestProductPipelineDistanceBoundaryInclusive(t *testing.T) {
	llmFake := &fakeLLM{intent: "product", summary: "summary"}
	searchFake := &fakeSearch{candidates: []search.Candidate{
		{ID: "edge", Distance: 1.0},
		{ID: "over", Distance: 1.0001},
	}}

	p := NewProductPipeline(llmFake, searchFake, testLogger(t))
	conv := store.NewConversation("s1")
	conv.Query = "blankets"

	if err := p.Run(context.Background(), conv, "blankets"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(conv.Products) != 1 || conv.Products[0].ID != "edge" {
		t.Errorf("boundary handling wrong, kept: %+v", conv.Products)
	}
}

func TestProductPipelineNonProductIntentSkipsSearch(t *testing.T) {
	llmFake := &fakeLLM{intent: "other"}
	searchFake := &fakeSearch{}

	p := NewProductPipeline(llmFake, searchFake, testLogger(t))
	conv := store.NewConversation("s1")
	conv.Query = "hi"

	if err := p.Run(context.Background(), conv, "hi"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(searchFake.queries) != 0 {
		t.Errorf("search was called for non-product intent")
	}
	if conv.Response != constant.FallbackNonProductMessage {
		t.Errorf("response = %q", conv.Response)
	}
	// The summarize prompt must never be sent for non-product turns.
	if len(llmFake.prompts) != 1 {
		t.Errorf("expected only the classify call, got %d prompts", len(llmFake.prompts))
	}
}

func TestProductPipelineNoSurvivorsFallback(t *testing.T) {
	llmFake := &fakeLLM{intent: "product", summary: "should not be used"}
	searchFake := &fakeSearch{candidates: []search.Candidate{
		{ID: "far", Distance: 1.8},
	}}

	p := NewProductPipeline(llmFake, searchFake, testLogger(t))
	conv := store.NewConversation("s1")
	conv.Query = "underwater basket weaving kit"

	if err := p.Run(context.Background(), conv, "underwater basket weaving kit"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if conv.Response != constant.FallbackNoMatchesMessage {
		t.Errorf("response = %q, want fallback", conv.Response)
	}
	if len(llmFake.prompts) != 1 {
		t.Errorf("summarize LLM call made despite empty candidate set")
	}
}

func TestProductPipelineHistoryGrowsTwoLinesPerTurn(t *testing.T) {
	llmFake := &fakeLLM{intent: "other"}
	p := NewProductPipeline(llmFake, &fakeSearch{}, testLogger(t))
	conv := store.NewConversation("s1")

	for turn := 1; turn <= 3; turn++ {
		conv.Query = conv.EffectiveQuery("hello")
		if err := p.Run(context.Background(), conv, "hello"); err != nil {
			t.Fatalf("turn %d failed: %v", turn, err)
		}
		if len(conv.History) != turn*2 {
			t.Fatalf("after turn %d history has %d lines, want %d", turn, len(conv.History), turn*2)
		}
	}

	if conv.History[0] != "user: hello" {
		t.Errorf("history[0] = %q", conv.History[0])
	}
	if conv.History[1] != "bot: "+constant.FallbackNonProductMessage {
		t.Errorf("history[1] = %q", conv.History[1])
	}
}

func TestProductPipelineProviderErrorAborts(t *testing.T) {
	providerErr := errors.New("connection refused")
	llmFake := &fakeLLM{generateFn: func(string) (string, error) { return "", providerErr }}
	searchFake := &fakeSearch{}

	p := NewProductPipeline(llmFake, searchFake, testLogger(t))
	conv := store.NewConversation("s1")
	conv.Query = "water"

	err := p.Run(context.Background(), conv, "water")
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if len(searchFake.queries) != 0 {
		t.Errorf("search ran after classify failed")
	}
	if len(conv.History) != 0 {
		t.Errorf("history mutated on failed classify: %v", conv.History)
	}
}

func TestNormalizeIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"product", "product"},
		{"Product", "product"},
		{"  order  \n", "order"},
		{"Label: fraud", "fraud"},
		{"The label is product.", "product"},
		{"I cannot classify this", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		if got := normalizeIntent(tt.raw); got != tt.want {
			t.Errorf("normalizeIntent(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestProductPipelineResetsPerTurnState(t *testing.T) {
	llmFake := &fakeLLM{intent: "other"}
	p := NewProductPipeline(llmFake, &fakeSearch{}, testLogger(t))

	conv := store.NewConversation("s1")
	conv.Intent = store.IntentProduct
	conv.Products = []search.Candidate{{ID: "stale"}}
	conv.Query = "thanks"

	if err := p.Run(context.Background(), conv, "thanks"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if conv.Products != nil {
		t.Errorf("stale products survived the turn: %+v", conv.Products)
	}
	if conv.Intent != store.IntentOther {
		t.Errorf("intent = %q", conv.Intent)
	}
}
