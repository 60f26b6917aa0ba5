package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/interfaces"
	"github.com/ternarybob/scrutor/internal/models"
	"github.com/ternarybob/scrutor/internal/services/prompts"
)

// The model replies with this sentinel when the dossier cannot answer the
// question, triggering one supplemental web search
const searchSentinel = "SEARCH"

// The final answer when the supplemental search still cannot ground a reply
const dontKnowAnswer = "I don't know."

// Service answers questions about a researched politician, grounded in the
// persisted dossier and its sources. Questions the material cannot answer
// get one supplemental web search before giving up.
type Service struct {
	chats    interfaces.ChatStorage
	results  interfaces.ResearchStorage
	research interfaces.ResearchService
	searcher interfaces.WebSearcher
	fetcher  interfaces.ContentFetcher
	llm      interfaces.LLMService
	store    *prompts.Store
	logger   arbor.ILogger
}

// NewService creates a new chat service
func NewService(
	chats interfaces.ChatStorage,
	results interfaces.ResearchStorage,
	research interfaces.ResearchService,
	searcher interfaces.WebSearcher,
	fetcher interfaces.ContentFetcher,
	llm interfaces.LLMService,
	store *prompts.Store,
	logger arbor.ILogger,
) *Service {
	return &Service{
		chats:    chats,
		results:  results,
		research: research,
		searcher: searcher,
		fetcher:  fetcher,
		llm:      llm,
		store:    store,
		logger:   logger,
	}
}

// CreateChat starts a conversation about a politician. Research runs first
// when no dossier exists yet; a fresh cached one is reused. An empty userID
// creates a temporary chat.
func (s *Service) CreateChat(ctx context.Context, name, position, userID string) (*models.Chat, error) {
	outcome := s.research.Research(ctx, name, position, models.ResearchOptions{})
	if outcome.Status != models.OutcomeSuccess {
		return nil, fmt.Errorf("research failed for %s: %s", name, outcome.Error)
	}

	chat := &models.Chat{
		ID:         common.NewChatID(),
		Politician: outcome.Name,
		Position:   position,
		UserID:     userID,
		ResultID:   outcome.Result.ID,
	}
	if err := s.chats.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("chat_id", chat.ID).
		Str("politician", chat.Politician).
		Bool("temporary", chat.IsTemporary()).
		Msg("Chat created")
	return chat, nil
}

// Ask answers a question within a chat and persists the exchange. When the
// dossier cannot answer, one supplemental search runs; when that also
// fails, the answer is exactly "I don't know."
func (s *Service) Ask(ctx context.Context, chatID, question string) (*models.QandA, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}

	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("chat not found: %s", chatID)
	}

	result, err := s.results.GetByID(ctx, chat.ResultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("research result not found for chat %s", chatID)
	}

	answer := s.answer(ctx, chat, result, question)

	qa := &models.QandA{
		ID:       common.NewQandAID(),
		ChatID:   chat.ID,
		Question: question,
		Answer:   answer,
	}
	if err := s.chats.SaveQandA(ctx, qa); err != nil {
		return nil, err
	}
	return qa, nil
}

func (s *Service) answer(ctx context.Context, chat *models.Chat, result *models.ResearchResult, question string) string {
	docs := make([]string, 0, len(result.Sources))
	for _, source := range result.Sources {
		docs = append(docs, source.Content)
	}

	response, err := s.complete(ctx, chat, result, question, docs)
	if err != nil {
		s.logger.Warn().Err(err).Str("chat_id", chat.ID).Msg("Q&A completion failed")
		return dontKnowAnswer
	}
	if !isSearchSentinel(response) {
		return response
	}

	// The dossier came up short; try once with supplemental search results
	s.logger.Debug().Str("chat_id", chat.ID).Str("question", question).Msg("Dossier insufficient, running supplemental search")
	supplemental := s.supplementalDocs(ctx, chat, question)
	if len(supplemental) == 0 {
		return dontKnowAnswer
	}

	response, err = s.complete(ctx, chat, result, question, append(docs, supplemental...))
	if err != nil || isSearchSentinel(response) {
		return dontKnowAnswer
	}
	return response
}

func (s *Service) complete(ctx context.Context, chat *models.Chat, result *models.ResearchResult, question string, docs []string) (string, error) {
	dossier := fmt.Sprintf("SUMMARY:\n%s\n\nBACKGROUND:\n%s\n\nACCOMPLISHMENTS:\n%s\n\nCRITICISMS:\n%s",
		result.Summary, result.Background, result.Accomplishments, result.Criticisms)

	prompt, err := s.store.Render(prompts.KeyQandA, map[string]string{
		"name":      chat.Politician,
		"position":  chat.Position,
		"dossier":   dossier,
		"documents": prompts.PackDocuments(docs),
		"question":  question,
	})
	if err != nil {
		return "", err
	}

	response, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (s *Service) supplementalDocs(ctx context.Context, chat *models.Chat, question string) []string {
	query := chat.Politician + " " + question
	var docs []string
	for _, result := range s.searcher.Search(ctx, query, 2) {
		if content := s.fetcher.Fetch(ctx, result.URL); content != "" {
			docs = append(docs, content)
		}
	}
	return docs
}

func isSearchSentinel(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), searchSentinel)
}
