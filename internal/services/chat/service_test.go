package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

type memChats struct {
	chats map[string]*models.Chat
	qas   []*models.QandA
}

func newMemChats() *memChats {
	return &memChats{chats: make(map[string]*models.Chat)}
}

func (m *memChats) CreateChat(_ context.Context, chat *models.Chat) error {
	m.chats[chat.ID] = chat
	return nil
}

func (m *memChats) GetChat(_ context.Context, id string) (*models.Chat, error) {
	return m.chats[id], nil
}

func (m *memChats) ListChatsByUser(_ context.Context, userID string) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range m.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memChats) DeleteChat(_ context.Context, id string) error {
	delete(m.chats, id)
	return nil
}

func (m *memChats) SaveQandA(_ context.Context, qa *models.QandA) error {
	m.qas = append(m.qas, qa)
	return nil
}

func (m *memChats) ListQandA(_ context.Context, chatID string) ([]*models.QandA, error) {
	var out []*models.QandA
	for _, qa := range m.qas {
		if qa.ChatID == chatID {
			out = append(out, qa)
		}
	}
	return out, nil
}

func (m *memChats) PurgeTemporaryChats(_ context.Context, cutoff time.Time) (int, error) {
	purged := 0
	for id, c := range m.chats {
		if c.IsTemporary() && c.CreatedAt.Before(cutoff) {
			delete(m.chats, id)
			purged++
		}
	}
	return purged, nil
}

type memResults struct {
	results map[string]*models.ResearchResult
}

func (m *memResults) FindLatest(context.Context, string, string) (*models.ResearchResult, error) {
	return nil, nil
}

func (m *memResults) Create(_ context.Context, r *models.ResearchResult) (*models.ResearchResult, error) {
	m.results[r.ID] = r
	return r, nil
}

func (m *memResults) GetByID(_ context.Context, id string) (*models.ResearchResult, error) {
	return m.results[id], nil
}

type stubResearch struct {
	outcome *models.ResearchOutcome
}

func (s *stubResearch) Research(context.Context, string, string, models.ResearchOptions) *models.ResearchOutcome {
	return s.outcome
}

type stubSearcher struct {
	results []models.SearchResult
	calls   int
}

func (s *stubSearcher) Search(context.Context, string, int) []models.SearchResult {
	s.calls++
	return s.results
}

type stubFetcher struct{ content string }

func (s *stubFetcher) Fetch(context.Context, string) string { return s.content }

// scriptedLLM returns canned responses in order, then repeats the last one
type scriptedLLM struct {
	responses []string
	calls     int
}

func (s *scriptedLLM) Complete(context.Context, string) (string, error) {
	if len(s.responses) == 0 {
		return "", fmt.Errorf("no scripted response")
	}
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], nil
}

func (s *scriptedLLM) HealthCheck(context.Context) error { return nil }
func (s *scriptedLLM) Close() error                      { return nil }

func fixtureResult() *models.ResearchResult {
	return &models.ResearchResult{
		ID:           "res_test",
		PoliticianID: "pol_test",
		Position:     "Senator",
		Summary:      "A balanced summary.",
		Background:   "Background text.",
		Sources: []models.Source{
			{URL: "https://example.com/a", Content: "source content about the senator"},
		},
		CreatedAt: time.Now(),
	}
}

func newTestService(llm *scriptedLLM, searcher *stubSearcher, fetcher *stubFetcher) (*Service, *memChats) {
	chats := newMemChats()
	results := &memResults{results: map[string]*models.ResearchResult{"res_test": fixtureResult()}}
	research := &stubResearch{outcome: models.SuccessOutcome("Maria Santos", "Senator", fixtureResult(), false)}
	svc := NewService(chats, results, research, searcher, fetcher, llm, prompts.NewStore(), common.GetLogger())
	return svc, chats
}

func seedChat(t *testing.T, chats *memChats) *models.Chat {
	t.Helper()
	chat := &models.Chat{
		ID:         "chat_test",
		Politician: "Maria Santos",
		Position:   "Senator",
		ResultID:   "res_test",
	}
	require.NoError(t, chats.CreateChat(context.Background(), chat))
	return chat
}

func TestAskAnswersFromDossier(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"She has served three terms."}}
	searcher := &stubSearcher{}
	svc, chats := newTestService(llm, searcher, &stubFetcher{})
	chat := seedChat(t, chats)

	qa, err := svc.Ask(context.Background(), chat.ID, "How long has she served?")
	require.NoError(t, err)

	assert.Equal(t, "She has served three terms.", qa.Answer)
	assert.Equal(t, 0, searcher.calls, "no supplemental search when the dossier answers")
	assert.Len(t, chats.qas, 1)
}

func TestAskSentinelTriggersOneSearchRetry(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"SEARCH", "Found it in the new sources."}}
	searcher := &stubSearcher{results: []models.SearchResult{{URL: "https://example.com/extra"}}}
	svc, chats := newTestService(llm, searcher, &stubFetcher{content: "supplemental content"})
	chat := seedChat(t, chats)

	qa, err := svc.Ask(context.Background(), chat.ID, "What about her latest bill?")
	require.NoError(t, err)

	assert.Equal(t, "Found it in the new sources.", qa.Answer)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 2, llm.calls)
}

func TestAskDoubleSentinelGivesDontKnow(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"SEARCH", "SEARCH"}}
	searcher := &stubSearcher{results: []models.SearchResult{{URL: "https://example.com/extra"}}}
	svc, chats := newTestService(llm, searcher, &stubFetcher{content: "supplemental content"})
	chat := seedChat(t, chats)

	qa, err := svc.Ask(context.Background(), chat.ID, "Something obscure?")
	require.NoError(t, err)

	assert.Equal(t, "I don't know.", qa.Answer)
	assert.Equal(t, 1, searcher.calls, "the supplemental search runs exactly once")
}

func TestAskSentinelWithNoSupplementalContent(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"SEARCH"}}
	searcher := &stubSearcher{} // No results
	svc, chats := newTestService(llm, searcher, &stubFetcher{})
	chat := seedChat(t, chats)

	qa, err := svc.Ask(context.Background(), chat.ID, "Anything?")
	require.NoError(t, err)

	assert.Equal(t, "I don't know.", qa.Answer)
	assert.Equal(t, 1, llm.calls, "no second completion without new material")
}

func TestAskUnknownChat(t *testing.T) {
	svc, _ := newTestService(&scriptedLLM{responses: []string{"x"}}, &stubSearcher{}, &stubFetcher{})

	_, err := svc.Ask(context.Background(), "chat_missing", "Question?")
	assert.Error(t, err)
}

func TestCreateChatRequiresSuccessfulResearch(t *testing.T) {
	chats := newMemChats()
	results := &memResults{results: map[string]*models.ResearchResult{}}
	research := &stubResearch{outcome: models.FailureOutcome("Nobody", "", "no usable content found")}
	svc := NewService(chats, results, research, &stubSearcher{}, &stubFetcher{}, &scriptedLLM{}, prompts.NewStore(), common.GetLogger())

	_, err := svc.CreateChat(context.Background(), "Nobody", "", "")
	assert.Error(t, err)
	assert.Empty(t, chats.chats)
}

func TestCreateChatLinksResult(t *testing.T) {
	svc, chats := newTestService(&scriptedLLM{responses: []string{"x"}}, &stubSearcher{}, &stubFetcher{})

	chat, err := svc.CreateChat(context.Background(), "maria santos", "Senator", "user_1")
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos", chat.Politician)
	assert.Equal(t, "res_test", chat.ResultID)
	assert.False(t, chat.IsTemporary())
	assert.Contains(t, chats.chats, chat.ID)
}
