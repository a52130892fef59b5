package notion

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/config"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// NewClient creates a Notion API client. httpClient may be nil.
func NewClient(token string, httpClient *http.Client) *notionapi.Client {
	if httpClient == nil {
		return notionapi.NewClient(notionapi.Token(token))
	}
	return notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(httpClient))
}

// Store reads quiz candidates from a Notion database and writes quizzes back to its pages.
// It implements both domain.VocabularySource and domain.QuizSink.
type Store struct {
	client *notionapi.Client
	cfg    config.NotionConfig
	logger *zap.Logger
}

// NewStore creates a new instance of Store.
func NewStore(client *notionapi.Client, cfg config.NotionConfig, logger *zap.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("notion client cannot be nil")
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("notion database id cannot be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Store{client: client, cfg: cfg, logger: logger}, nil
}

// FetchCandidates runs one filtered, page-size capped query against the database.
// Pages without a word in the title property are dropped.
func (s *Store) FetchCandidates(ctx context.Context) ([]domain.QuizCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Database.Query(ctx, notionapi.DatabaseID(s.cfg.DatabaseID), &notionapi.DatabaseQueryRequest{
		Filter:   BuildFilter(s.cfg),
		PageSize: s.cfg.PageSize,
	})
	if err != nil {
		return nil, domain.NewStoreError("failed to query notion database", err)
	}

	candidates := make([]domain.QuizCandidate, 0, len(resp.Results))
	for _, page := range resp.Results {
		candidate, ok := PageToCandidate(page, s.cfg.Properties)
		if !ok {
			s.logger.Debug("Skipping page without a word", zap.String("page_id", string(page.ID)))
			continue
		}
		candidates = append(candidates, candidate)
	}
	s.logger.Info("Fetched candidates from notion",
		zap.Int("pages", len(resp.Results)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// WriteQuiz patches the candidate's page with the question, the answer key and a cleared answer.
func (s *Store) WriteQuiz(ctx context.Context, candidate domain.QuizCandidate, quiz domain.RenderedQuiz, quizDate time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	_, err := s.client.Page.Update(ctx, notionapi.PageID(candidate.ID), &notionapi.PageUpdateRequest{
		Properties: BuildUpdateProperties(s.cfg, quiz, quizDate),
	})
	if err != nil {
		return domain.NewStoreError(fmt.Sprintf("failed to update notion page %s", candidate.ID), err)
	}
	return nil
}

// BuildFilter returns the review-eligibility predicate for the configured filter mode.
func BuildFilter(cfg config.NotionConfig) notionapi.Filter {
	props := cfg.Properties
	if cfg.Filter == config.FilterDue {
		return notionapi.OrCompoundFilter{
			notionapi.PropertyFilter{
				Property: props.LastQuiz,
				Date:     &notionapi.DateFilterCondition{IsEmpty: true},
			},
			notionapi.PropertyFilter{
				Property: props.Due,
				Checkbox: &notionapi.CheckboxFilterCondition{Equals: true},
			},
		}
	}

	zero := 0.0
	return notionapi.PropertyFilter{
		Property: props.ReviewStage,
		Number:   &notionapi.NumberFilterCondition{GreaterThan: &zero},
	}
}

// PageToCandidate reads the word from the first title segment and the last quiz date.
func PageToCandidate(page notionapi.Page, props config.NotionProperties) (domain.QuizCandidate, bool) {
	candidate := domain.QuizCandidate{ID: string(page.ID)}

	switch title := page.Properties[props.Name].(type) {
	case *notionapi.TitleProperty:
		candidate.Word = firstPlainText(title.Title)
	case notionapi.TitleProperty:
		candidate.Word = firstPlainText(title.Title)
	}
	if candidate.Word == "" {
		return candidate, false
	}

	var date *notionapi.DateObject
	switch prop := page.Properties[props.LastQuiz].(type) {
	case *notionapi.DateProperty:
		date = prop.Date
	case notionapi.DateProperty:
		date = prop.Date
	}
	if date != nil && date.Start != nil {
		start := time.Time(*date.Start)
		candidate.LastQuizDate = &start
	}
	return candidate, true
}

// BuildUpdateProperties renders the page patch for a quiz.
func BuildUpdateProperties(cfg config.NotionConfig, quiz domain.RenderedQuiz, quizDate time.Time) notionapi.Properties {
	props := cfg.Properties
	update := notionapi.Properties{
		props.Question:  notionapi.RichTextProperty{RichText: richText(quiz.Text)},
		props.AnswerKey: notionapi.RichTextProperty{RichText: richText(quiz.CorrectLabel)},
		props.MyAnswer:  notionapi.RichTextProperty{RichText: []notionapi.RichText{}},
	}
	if cfg.TrackSchedule {
		day := notionapi.Date(quizDate)
		update[props.LastQuiz] = notionapi.DateProperty{Date: &notionapi.DateObject{Start: &day}}
		update[props.Due] = notionapi.CheckboxProperty{Checkbox: false}
	}
	return update
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: content},
	}}
}

func firstPlainText(segments []notionapi.RichText) string {
	if len(segments) == 0 {
		return ""
	}
	text := segments[0].PlainText
	if text == "" && segments[0].Text != nil {
		text = segments[0].Text.Content
	}
	return strings.TrimSpace(text)
}

var (
	_ domain.VocabularySource = (*Store)(nil)
	_ domain.QuizSink         = (*Store)(nil)
)
