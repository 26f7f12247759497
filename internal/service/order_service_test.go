package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/pkg/ai/pipeline"
	"reliefconnect-ai-be/pkg/llm"
)

type adjudicationLLM struct{}

func (adjudicationLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return adjudicationLLM{}.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (adjudicationLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	prompt := history[len(history)-1].Content
	switch {
	case strings.Contains(prompt, "Analyze for fraud"):
		return `{"fraud_flag": true, "fraud_risk_level": "high", "reasons": ["third claim this month"]}`, nil
	case strings.Contains(prompt, "FINAL DECISION"):
		return `{"decision": "escalate", "reason": "repeat claims", "polite_message": "We are reviewing your case.", "fraud_flag": true, "fraud_risk_level": "high"}`, nil
	}
	return "", errors.New("unexpected prompt")
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestOrderService(t *testing.T, pub IPublisherService) IOrderService {
	t.Helper()
	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	p := pipeline.NewOrderPipeline(adjudicationLLM{}, "", log)
	return NewOrderService(nil, p, pub, log)
}

func TestReportInvalidBase64ImageIsBadRequest(t *testing.T) {
	svc := newTestOrderService(t, &capturingPublisher{})

	_, err := svc.Report(context.Background(), &dto.ReportRequest{
		Order:        map[string]interface{}{"id": "ord-1"},
		OrderProblem: "item missing",
		IssueType:    "missing",
		Image:        "!!!not-base64!!!",
	})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestReportPublishesDecisionEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newTestOrderService(t, pub)

	res, err := svc.Report(context.Background(), &dto.ReportRequest{
		Order:        map[string]interface{}{"id": "ord-7", "email": "siti@example.com"},
		OrderProblem: "never arrived",
		IssueType:    "missing",
	})
	require.NoError(t, err)
	assert.Equal(t, "escalate", res.Decision.Decision)

	require.Len(t, pub.payloads, 1)
	var msg dto.DecisionMadeMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, "ord-7", msg.OrderId)
	assert.Equal(t, "escalate", msg.Decision)
	assert.True(t, msg.FraudFlag)
	assert.Equal(t, "siti@example.com", msg.CustomerEmail)
}

func TestDecodeImageDataURI(t *testing.T) {
	decoded, err := decodeImage("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)

	decoded, err = decodeImage("")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}
