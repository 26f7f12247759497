package pipeline

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"reliefconnect-ai-be/internal/constant"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/pkg/ai/parser"
	"reliefconnect-ai-be/pkg/llm"
)

// OrderIssue is one customer complaint under adjudication. Order is the
// raw order record as stored; it is forwarded to the model verbatim.
// Image is decoded bytes, nil when the customer attached nothing.
type OrderIssue struct {
	Order     map[string]interface{}
	Problem   string
	IssueType string
	Image     []byte
}

// Decision is the validated verdict of the adjudication pipeline.
// The first three fields are mandatory; the rest are defaulted when the
// model omits them.
type Decision struct {
	Decision       string `json:"decision" validate:"required"`
	Reason         string `json:"reason" validate:"required"`
	PoliteMessage  string `json:"polite_message" validate:"required"`
	InternalNotes  string `json:"internal_notes"`
	FraudFlag      bool   `json:"fraud_flag"`
	FraudRiskLevel string `json:"fraud_risk_level"`
}

// OrderResult carries each stage's output. ImageResult stays an empty map
// when no image was attached, so the decision prompt always has a value
// to interpolate.
type OrderResult struct {
	FraudResult map[string]interface{} `json:"fraud_result"`
	ImageResult map[string]interface{} `json:"image_result"`
	Decision    *Decision              `json:"decision"`
}

// OrderPipeline adjudicates order issues: always a fraud check, image
// analysis only when evidence was attached, then the final decision which
// sees both prior outputs.
type OrderPipeline struct {
	llmProvider llm.LLMProvider
	visionModel string
	validate    *validator.Validate
	log         logger.ILogger
}

// NewOrderPipeline builds the pipeline. visionModel overrides the provider
// default for the image stage; pass "" to use the provider's own model.
func NewOrderPipeline(llmProvider llm.LLMProvider, visionModel string, log logger.ILogger) *OrderPipeline {
	return &OrderPipeline{
		llmProvider: llmProvider,
		visionModel: visionModel,
		validate:    validator.New(),
		log:         log,
	}
}

func (p *OrderPipeline) Run(ctx context.Context, issue *OrderIssue) (*OrderResult, error) {
	result := &OrderResult{
		FraudResult: map[string]interface{}{},
		ImageResult: map[string]interface{}{},
	}

	if err := p.fraudCheck(ctx, issue, result); err != nil {
		return nil, err
	}

	if len(issue.Image) > 0 {
		if err := p.imageAnalysis(ctx, issue, result); err != nil {
			return nil, err
		}
	}

	if err := p.decide(ctx, issue, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *OrderPipeline) fraudCheck(ctx context.Context, issue *OrderIssue, result *OrderResult) error {
	orderJSON, err := marshalOrder(issue.Order)
	if err != nil {
		return err
	}

	raw, err := p.llmProvider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.FraudCheckSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.FraudCheckPrompt, orderJSON, issue.IssueType, issue.Problem)},
	}, llm.WithTemperature(0.1))
	if err != nil {
		return fmt.Errorf("fraud check failed: %w", err)
	}

	fraud, err := parser.Extract(raw)
	if err != nil {
		return fmt.Errorf("fraud check: %w", err)
	}
	result.FraudResult = fraud

	p.log.Debug("OrderPipeline", "fraud check complete", map[string]interface{}{
		"fraud_flag":       fraud["fraud_flag"],
		"fraud_risk_level": fraud["fraud_risk_level"],
	})
	return nil
}

func (p *OrderPipeline) imageAnalysis(ctx context.Context, issue *OrderIssue, result *OrderResult) error {
	orderJSON, err := marshalOrder(issue.Order)
	if err != nil {
		return err
	}

	options := []llm.Option{llm.WithTemperature(0.1)}
	if p.visionModel != "" {
		options = append(options, llm.WithModel(p.visionModel))
	}

	raw, err := p.llmProvider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.ImageAnalysisSystemPrompt},
		{
			Role:    constant.ChatMessageRoleUser,
			Content: fmt.Sprintf(constant.ImageAnalysisPrompt, orderJSON, issue.IssueType, issue.Problem),
			Images:  []string{base64.StdEncoding.EncodeToString(issue.Image)},
		},
	}, options...)
	if err != nil {
		return fmt.Errorf("image analysis failed: %w", err)
	}

	analysis, err := parser.Extract(raw)
	if err != nil {
		return fmt.Errorf("image analysis: %w", err)
	}
	result.ImageResult = analysis

	p.log.Debug("OrderPipeline", "image analysis complete", map[string]interface{}{
		"supports_claim": analysis["supports_claim"],
	})
	return nil
}

func (p *OrderPipeline) decide(ctx context.Context, issue *OrderIssue, result *OrderResult) error {
	orderJSON, err := marshalOrder(issue.Order)
	if err != nil {
		return err
	}
	fraudJSON, err := json.MarshalIndent(result.FraudResult, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fraud result: %w", err)
	}
	imageJSON, err := json.MarshalIndent(result.ImageResult, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal image result: %w", err)
	}

	raw, err := p.llmProvider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.DecisionSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(
			constant.DecisionPrompt, orderJSON, issue.IssueType, issue.Problem, string(fraudJSON), string(imageJSON),
		)},
	}, llm.WithTemperature(0.1))
	if err != nil {
		return fmt.Errorf("decision failed: %w", err)
	}

	var decision Decision
	if err := parser.ExtractInto(raw, &decision); err != nil {
		return fmt.Errorf("decision: %w", err)
	}

	if decision.FraudRiskLevel == "" {
		decision.FraudRiskLevel = "low"
	}

	if err := p.validate.Struct(&decision); err != nil {
		field := ""
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field = fieldErrs[0].Field()
		}
		return &SchemaError{Field: field, Err: err}
	}

	result.Decision = &decision

	p.log.Info("OrderPipeline", "decision made", map[string]interface{}{
		"decision":         decision.Decision,
		"fraud_flag":       decision.FraudFlag,
		"fraud_risk_level": decision.FraudRiskLevel,
	})
	return nil
}

func marshalOrder(order map[string]interface{}) (string, error) {
	if order == nil {
		order = map[string]interface{}{}
	}
	b, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}
	return string(b), nil
}
