package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"reliefconnect-ai-be/pkg/llm"
)

// scriptedLLM answers by matching the user prompt against stage templates.
type scriptedLLM struct {
	fraudReply    string
	imageReply    string
	decisionReply string
	imageCalls    int
	imagePayloads []string
	decisionSeen  string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (s *scriptedLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	var user llm.Message
	for _, m := range history {
		if m.Role == "user" {
			user = m
		}
	}

	switch {
	case strings.Contains(user.Content, "Analyze for fraud"):
		return s.fraudReply, nil
	case strings.Contains(user.Content, "image evidence") || strings.Contains(user.Content, "customer-provided image"):
		s.imageCalls++
		s.imagePayloads = append(s.imagePayloads, user.Images...)
		return s.imageReply, nil
	case strings.Contains(user.Content, "FINAL DECISION"):
		s.decisionSeen = user.Content
		return s.decisionReply, nil
	}
	return "", errors.New("unexpected prompt")
}

func sampleIssue(image []byte) *OrderIssue {
	return &OrderIssue{
		Order: map[string]interface{}{
			"id":    "ord-42",
			"name":  "Siti",
			"items": []interface{}{map[string]interface{}{"product": "Tarpaulin", "qty": 2}},
		},
		Problem:   "The tarpaulin arrived torn",
		IssueType: "damaged",
		Image:     image,
	}
}

func TestOrderPipelineWithoutImage(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply:    `{"fraud_flag": false, "fraud_risk_level": "low", "reasons": [], "suggested_action_hint": "likely_legit"}`,
		decisionReply: `{"decision": "replacement_sent", "reason": "damage confirmed by history", "polite_message": "We are sending a replacement.", "internal_notes": "", "fraud_flag": false, "fraud_risk_level": "low"}`,
	}

	p := NewOrderPipeline(scripted, "", testLogger(t))
	result, err := p.Run(context.Background(), sampleIssue(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if scripted.imageCalls != 0 {
		t.Errorf("image stage ran without an attached image")
	}
	if result.ImageResult == nil || len(result.ImageResult) != 0 {
		t.Errorf("image result should be an empty map, got %v", result.ImageResult)
	}
	// The decision prompt interpolates the image result even when the
	// stage was skipped.
	if !strings.Contains(scripted.decisionSeen, "{}") {
		t.Errorf("decision prompt missing empty image result:\n%s", scripted.decisionSeen)
	}
	if result.Decision.Decision != "replacement_sent" {
		t.Errorf("decision = %q", result.Decision.Decision)
	}
}

func TestOrderPipelineWithImage(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply:    `{"fraud_flag": false, "fraud_risk_level": "low"}`,
		imageReply:    `{"image_relevant": true, "supports_claim": true, "suspicious_signals": [], "short_summary": "torn tarpaulin visible"}`,
		decisionReply: `{"decision": "refund_approved", "reason": "evidence supports claim", "polite_message": "Your refund is on its way."}`,
	}

	p := NewOrderPipeline(scripted, "llava", testLogger(t))
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	result, err := p.Run(context.Background(), sampleIssue(image))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if scripted.imageCalls != 1 {
		t.Fatalf("image stage ran %d times, want 1", scripted.imageCalls)
	}
	if len(scripted.imagePayloads) != 1 {
		t.Fatalf("image payload not attached to the message")
	}
	if result.ImageResult["supports_claim"] != true {
		t.Errorf("image result = %v", result.ImageResult)
	}
	if !strings.Contains(scripted.decisionSeen, "torn tarpaulin visible") {
		t.Errorf("decision prompt missing image analysis:\n%s", scripted.decisionSeen)
	}
}

func TestOrderPipelineDecisionDefaults(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply:    `{"fraud_flag": false}`,
		decisionReply: `{"decision": "denied", "reason": "no order found", "polite_message": "We could not locate this order."}`,
	}

	p := NewOrderPipeline(scripted, "", testLogger(t))
	result, err := p.Run(context.Background(), sampleIssue(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	d := result.Decision
	if d.InternalNotes != "" {
		t.Errorf("internal_notes = %q", d.InternalNotes)
	}
	if d.FraudFlag {
		t.Errorf("fraud_flag defaulted to true")
	}
	if d.FraudRiskLevel != "low" {
		t.Errorf("fraud_risk_level = %q, want low", d.FraudRiskLevel)
	}
}

func TestOrderPipelineMissingRequiredFieldIsSchemaError(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply:    `{"fraud_flag": true, "fraud_risk_level": "high"}`,
		decisionReply: `{"reason": "looks fraudulent", "polite_message": "We need more information."}`,
	}

	p := NewOrderPipeline(scripted, "", testLogger(t))
	_, err := p.Run(context.Background(), sampleIssue(nil))
	if err == nil {
		t.Fatal("expected schema error")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if schemaErr.Field != "Decision" {
		t.Errorf("SchemaError.Field = %q", schemaErr.Field)
	}
}

func TestOrderPipelineUnparseableFraudReply(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply: "I refuse to answer in JSON today.",
	}

	p := NewOrderPipeline(scripted, "", testLogger(t))
	_, err := p.Run(context.Background(), sampleIssue(nil))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "fraud check") {
		t.Errorf("error not attributed to the failing stage: %v", err)
	}
}

func TestOrderPipelineDecisionWrappedInMarkdown(t *testing.T) {
	scripted := &scriptedLLM{
		fraudReply:    `{"fraud_flag": false}`,
		decisionReply: "Here is my verdict:\n```json\n{\"decision\": \"refund_approved\", \"reason\": \"ok\", \"polite_message\": \"Done!\"}\n```",
	}

	p := NewOrderPipeline(scripted, "", testLogger(t))
	result, err := p.Run(context.Background(), sampleIssue(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Decision.Decision != "refund_approved" {
		t.Errorf("decision = %q", result.Decision.Decision)
	}
}
