package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"reliefconnect-ai-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiProvider struct {
	APIKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		BaseURL:   defaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []*geminiContent        `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]*geminiContent, 0, len(history))
	for _, msg := range history {
		// Gemini only knows "user" and "model" roles; system prompts are
		// prepended as user turns upstream.
		role := "user"
		if msg.Role == "assistant" || msg.Role == "model" {
			role = "model"
		}

		parts := []*geminiPart{{Text: msg.Content}}
		for _, img := range msg.Images {
			parts = append(parts, &geminiPart{
				InlineData: &geminiInlineData{
					MimeType: "image/jpeg",
					Data:     img,
				},
			})
		}

		contents = append(contents, &geminiContent{
			Parts: parts,
			Role:  role,
		})
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", &llm.ProviderError{Provider: "gemini", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.ProviderError{Provider: "gemini", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.ProviderError{Provider: "gemini", Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes))}
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(bodyBytes, &geminiRes); err != nil {
		return "", &llm.ProviderError{Provider: "gemini", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &llm.ProviderError{Provider: "gemini", Err: errors.New("no candidates returned")}
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
