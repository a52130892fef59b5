package quizgen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
)

// PlaceholderDistractor fills the option list when the model returns fewer than three distractors.
const PlaceholderDistractor = "Incorrect Option"

// longForm is the verbose key set the prompts ask for.
type longForm struct {
	Question    any `json:"question"`
	Correct     any `json:"correct"`
	Distractors any `json:"distractors"`
}

// shortForm is the compact key set some replies use instead.
type shortForm struct {
	Q any `json:"q"`
	A any `json:"a"`
	W any `json:"w"`
}

// ExtractJSON returns the text between the first '{' and the last '}' of raw,
// or raw itself when no such pair exists.
func ExtractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// Normalize coerces a raw model reply into a canonical QuizRecord for word.
// Unparsable or non-object replies return a MALFORMED_QUIZ error and no record.
func Normalize(raw string, word string) (*domain.QuizRecord, error) {
	candidate := strings.TrimSpace(ExtractJSON(raw))

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &object); err != nil {
		return nil, domain.NewMalformedQuizError("model reply is not a JSON object", err)
	}
	if object == nil {
		return nil, domain.NewMalformedQuizError("model reply is JSON null", nil)
	}

	var long longForm
	var short shortForm
	if err := json.Unmarshal([]byte(candidate), &long); err != nil {
		return nil, domain.NewMalformedQuizError("failed to decode long form keys", err)
	}
	if err := json.Unmarshal([]byte(candidate), &short); err != nil {
		return nil, domain.NewMalformedQuizError("failed to decode short form keys", err)
	}

	record := &domain.QuizRecord{
		Question:      firstNonEmpty(asString(long.Question), asString(short.Q)),
		CorrectAnswer: firstNonEmpty(asString(long.Correct), asString(short.A)),
	}

	distractors := coerceDistractors(long.Distractors)
	if len(distractors) == 0 {
		distractors = coerceDistractors(short.W)
	}
	record.Distractors = padDistractors(distractors)

	if record.CorrectAnswer == "" {
		record.CorrectAnswer = word
	}
	if record.Question == "" {
		record.Question = fmt.Sprintf("Quiz for %s", word)
	}
	return record, nil
}

// coerceDistractors accepts an array of values or a delimited string.
func coerceDistractors(v any) []string {
	var parts []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			parts = append(parts, asString(item))
		}
	case string:
		parts = strings.FieldsFunc(val, func(r rune) bool {
			return r == ',' || r == '-' || r == '\n'
		})
	default:
		return nil
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func padDistractors(in []string) []string {
	out := make([]string, 0, domain.DistractorCount)
	for _, d := range in {
		if len(out) == domain.DistractorCount {
			break
		}
		out = append(out, d)
	}
	for len(out) < domain.DistractorCount {
		out = append(out, PlaceholderDistractor)
	}
	return out
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
