package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefconnect-ai-be/internal/constant"
	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/logger"
	"reliefconnect-ai-be/pkg/ai/pipeline"
	"reliefconnect-ai-be/pkg/llm"
	"reliefconnect-ai-be/pkg/search"
	"reliefconnect-ai-be/pkg/store"
)

type stubLLM struct {
	intent  string
	summary string
	err     error
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "Classify the intent") {
		return s.intent, nil
	}
	return s.summary, nil
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var last string
	for _, m := range history {
		if m.Role == "user" {
			last = m.Content
		}
	}
	return s.Generate(ctx, last, options...)
}

type stubSearch struct {
	candidates []search.Candidate
	queries    []string
}

func (s *stubSearch) Query(_ context.Context, text string, _ int) ([]search.Candidate, error) {
	s.queries = append(s.queries, text)
	return s.candidates, nil
}

type fakeSessionRepo struct {
	sessions map[string]*store.Conversation
	locked   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*store.Conversation)}
}

func (f *fakeSessionRepo) Get(sessionID string) (*store.Conversation, bool) {
	conv, ok := f.sessions[sessionID]
	return conv, ok
}

func (f *fakeSessionRepo) Save(conversation *store.Conversation) {
	f.sessions[conversation.SessionID] = conversation
}

func (f *fakeSessionRepo) Delete(sessionID string) {
	delete(f.sessions, sessionID)
}

func (f *fakeSessionRepo) Lock(string) func() {
	f.locked++
	return func() {}
}

func newTestChatService(t *testing.T, llmStub *stubLLM, searchStub *stubSearch, repo *fakeSessionRepo) IChatService {
	t.Helper()
	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	p := pipeline.NewProductPipeline(llmStub, searchStub, log)
	return NewChatService(repo, p, llmStub, log)
}

func TestRecommendDefaultSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestChatService(t, &stubLLM{intent: "other"}, &stubSearch{}, repo)

	res, err := svc.Recommend(context.Background(), &dto.RecommendRequest{Query: "hi"})
	require.NoError(t, err)

	assert.Equal(t, constant.DefaultSessionID, res.SessionId)
	assert.Equal(t, store.IntentOther, res.Intent)
	assert.Equal(t, constant.FallbackNonProductMessage, res.Response)

	saved, found := repo.Get(constant.DefaultSessionID)
	require.True(t, found, "successful turn must be persisted")
	assert.Len(t, saved.History, 2)
	assert.Equal(t, 1, repo.locked)
}

func TestRecommendHistoryAccumulatesAcrossTurns(t *testing.T) {
	repo := newFakeSessionRepo()
	searchStub := &stubSearch{candidates: []search.Candidate{{ID: "1", Distance: 0.2}}}
	svc := newTestChatService(t, &stubLLM{intent: "product", summary: "Try this water."}, searchStub, repo)

	_, err := svc.Recommend(context.Background(), &dto.RecommendRequest{SessionId: "s9", Query: "I need water"})
	require.NoError(t, err)

	res, err := svc.Recommend(context.Background(), &dto.RecommendRequest{SessionId: "s9", Query: "something for kids"})
	require.NoError(t, err)

	assert.Len(t, res.History, 4)

	// The second turn's search query must carry the first turn's context.
	require.Len(t, searchStub.queries, 2)
	assert.Contains(t, searchStub.queries[1], "user: I need water")
	assert.Contains(t, searchStub.queries[1], "user: something for kids")
}

func TestRecommendFailureDoesNotPersist(t *testing.T) {
	repo := newFakeSessionRepo()
	seeded := store.NewConversation("s1")
	seeded.AppendUserLine("earlier")
	seeded.AppendBotLine("earlier reply")
	repo.Save(seeded)

	svc := newTestChatService(t, &stubLLM{err: errors.New("provider down")}, &stubSearch{}, repo)

	_, err := svc.Recommend(context.Background(), &dto.RecommendRequest{SessionId: "s1", Query: "water"})
	require.Error(t, err)

	saved, _ := repo.Get("s1")
	assert.Len(t, saved.History, 2, "failed turn must leave stored history untouched")
}

func TestSummarize(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestChatService(t, &stubLLM{summary: " The user wants water. "}, &stubSearch{}, repo)

	res, err := svc.Summarize(context.Background(), &dto.SummarizeRequest{Text: "user: water\nbot: here"})
	require.NoError(t, err)
	assert.Equal(t, "The user wants water.", res.Summary)
}

func TestResetSession(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.Save(store.NewConversation("gone"))

	svc := newTestChatService(t, &stubLLM{}, &stubSearch{}, repo)
	svc.ResetSession("gone")

	_, found := repo.Get("gone")
	assert.False(t, found)
}
