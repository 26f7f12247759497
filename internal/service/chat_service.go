package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"reliefconnect-ai-be/internal/constant"
	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/internal/repository/contract"
	"reliefconnect-ai-be/pkg/ai/pipeline"
	"reliefconnect-ai-be/pkg/llm"
	"reliefconnect-ai-be/pkg/search"
	"reliefconnect-ai-be/pkg/store"
)

type IChatService interface {
	Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error)
	Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	ResetSession(sessionID string)
}

type chatService struct {
	sessionRepo contract.SessionRepository
	pipeline    *pipeline.ProductPipeline
	llmProvider llm.LLMProvider
	logger      logger.ILogger
	llmLogger   *log.Logger
}

func NewChatService(
	sessionRepo contract.SessionRepository,
	productPipeline *pipeline.ProductPipeline,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo: sessionRepo,
		pipeline:    productPipeline,
		llmProvider: llmProvider,
		logger:      log,
		llmLogger:   initLLMLogger(),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_support.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-SUPPORT] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// Recommend runs one recommendation turn. The per-session lock is held
// for the whole read-run-save cycle; the pipeline runs on a copy so a
// failed turn leaves the stored conversation untouched.
func (s *chatService) Recommend(ctx context.Context, req *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = constant.DefaultSessionID
	}

	unlock := s.sessionRepo.Lock(sessionID)
	defer unlock()

	conv, found := s.sessionRepo.Get(sessionID)
	if !found {
		conv = store.NewConversation(sessionID)
	}

	working := cloneConversation(conv)
	working.Query = conv.EffectiveQuery(req.Query)

	s.llmLogger.Printf("========== TURN [session=%s] ==========", sessionID)
	s.llmLogger.Printf("RAW QUERY: %s", req.Query)
	s.llmLogger.Printf("EFFECTIVE QUERY:\n%s", working.Query)

	if err := s.pipeline.Run(ctx, working, req.Query); err != nil {
		s.llmLogger.Printf("TURN FAILED: %v", err)
		s.logger.Error("ChatService", "Recommendation turn failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.llmLogger.Printf("INTENT: %s | PRODUCTS: %d", working.Intent, len(working.Products))
	s.llmLogger.Printf("RESPONSE: %s", working.Response)

	s.sessionRepo.Save(working)

	return &dto.RecommendResponse{
		SessionId: sessionID,
		Intent:    working.Intent,
		Response:  working.Response,
		Products:  working.Products,
		History:   working.History,
	}, nil
}

// Summarize condenses arbitrary conversation text in one LLM call.
func (s *chatService) Summarize(ctx context.Context, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	prompt := fmt.Sprintf(constant.SummarizeConversationPrompt, req.Text)

	summary, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return nil, err
	}

	return &dto.SummarizeResponse{Summary: strings.TrimSpace(summary)}, nil
}

func (s *chatService) ResetSession(sessionID string) {
	if sessionID == "" {
		sessionID = constant.DefaultSessionID
	}
	unlock := s.sessionRepo.Lock(sessionID)
	defer unlock()
	s.sessionRepo.Delete(sessionID)
}

func cloneConversation(conv *store.Conversation) *store.Conversation {
	clone := *conv
	clone.History = append([]string(nil), conv.History...)
	clone.Products = append([]search.Candidate(nil), conv.Products...)
	return &clone
}
