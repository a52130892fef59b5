package domain

import (
	"math/rand"
	"strings"
	"time"
)

// QuizStyle is the kind of multiple choice question asked for a word.
type QuizStyle string

const (
	StyleSentence   QuizStyle = "sentence"
	StyleDefinition QuizStyle = "definition"
	StyleThesaurus  QuizStyle = "thesaurus"
)

// QuizStyles lists every supported style.
var QuizStyles = []QuizStyle{StyleSentence, StyleDefinition, StyleThesaurus}

// OptionLabels are assigned positionally to the shuffled options.
var OptionLabels = []string{"A", "B", "C", "D"}

// DistractorCount is the number of wrong options in every quiz.
const DistractorCount = 3

// QuizCandidate is a vocabulary entry eligible for quizzing.
// It is never mutated; writes are keyed by ID.
type QuizCandidate struct {
	ID           string
	Word         string
	LastQuizDate *time.Time
}

// QuizzedOn reports whether the candidate was last quizzed on the same calendar day as day.
func (c QuizCandidate) QuizzedOn(day time.Time) bool {
	if c.LastQuizDate == nil {
		return false
	}
	return c.LastQuizDate.Format(time.DateOnly) == day.Format(time.DateOnly)
}

// QuizPrompt is the per-iteration input to the prompt builder.
type QuizPrompt struct {
	Word  string
	Style QuizStyle
}

// PickStyle returns one of QuizStyles uniformly at random.
func PickStyle(rng *rand.Rand) QuizStyle {
	return QuizStyles[rng.Intn(len(QuizStyles))]
}

// QuizRecord is the canonical shape every model response is coerced into.
// Distractors always holds exactly DistractorCount entries after normalization.
type QuizRecord struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct"`
	Distractors   []string `json:"distractors"`
}

// RenderedQuiz is the question text with labeled options plus the label of the correct one.
type RenderedQuiz struct {
	Text         string
	CorrectLabel string
}

type quizOption struct {
	text      string
	isCorrect bool
}

// RenderQuiz shuffles the correct answer and the distractors into four labeled options.
// CorrectLabel follows the option flagged correct even when its text duplicates a distractor.
func RenderQuiz(record QuizRecord, rng *rand.Rand) RenderedQuiz {
	options := make([]quizOption, 0, len(OptionLabels))
	options = append(options, quizOption{text: record.CorrectAnswer, isCorrect: true})
	for _, d := range record.Distractors {
		if len(options) == len(OptionLabels) {
			break
		}
		options = append(options, quizOption{text: d})
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	var sb strings.Builder
	sb.WriteString(record.Question)
	sb.WriteString("\n\n")

	rendered := RenderedQuiz{}
	for i, opt := range options {
		label := OptionLabels[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(label)
		sb.WriteString(". ")
		sb.WriteString(opt.text)
		if opt.isCorrect {
			rendered.CorrectLabel = label
		}
	}
	rendered.Text = sb.String()
	return rendered
}

// RunSummary counts what happened to the candidates of a single run.
type RunSummary struct {
	Candidates int
	Generated  int
	Skipped    int
	Failed     int
}
