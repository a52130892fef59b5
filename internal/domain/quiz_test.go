package domain

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuiz_CorrectLabelPointsAtCorrectAnswer(t *testing.T) {
	record := QuizRecord{
		Question:      "Choose a synonym of happy",
		CorrectAnswer: "joyful",
		Distractors:   []string{"sad", "angry", "Incorrect Option"},
	}

	seen := map[string]bool{}
	for seed := int64(0); seed < 200; seed++ {
		rendered := RenderQuiz(record, rand.New(rand.NewSource(seed)))

		lines := strings.Split(rendered.Text, "\n")
		require.Len(t, lines, 6, "question, blank line, four options")
		assert.Equal(t, record.Question, lines[0])
		assert.Empty(t, lines[1])

		require.Contains(t, OptionLabels, rendered.CorrectLabel)
		options := map[string]string{}
		for i, line := range lines[2:] {
			label := OptionLabels[i]
			require.True(t, strings.HasPrefix(line, label+". "), "line %q should start with %s", line, label)
			options[label] = strings.TrimPrefix(line, label+". ")
		}
		assert.Equal(t, record.CorrectAnswer, options[rendered.CorrectLabel])
		assert.ElementsMatch(t, []string{"joyful", "sad", "angry", "Incorrect Option"},
			[]string{options["A"], options["B"], options["C"], options["D"]})
		seen[rendered.CorrectLabel] = true
	}
	assert.Len(t, seen, 4, "correct answer should land on every label across seeds")
}

func TestRenderQuiz_DuplicateTextKeepsFlaggedLabel(t *testing.T) {
	record := QuizRecord{
		Question:      "Def: happy",
		CorrectAnswer: "happy",
		Distractors:   []string{"happy", "mad", "bad"},
	}

	for seed := int64(0); seed < 50; seed++ {
		rendered := RenderQuiz(record, rand.New(rand.NewSource(seed)))
		assert.Contains(t, rendered.Text, rendered.CorrectLabel+". happy")
		assert.Equal(t, 2, strings.Count(rendered.Text, ". happy"))
	}
}

func TestPickStyle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := map[QuizStyle]int{}
	for i := 0; i < 300; i++ {
		counts[PickStyle(rng)]++
	}
	for _, style := range QuizStyles {
		assert.Greater(t, counts[style], 0, "style %s never picked", style)
	}
}

func TestQuizCandidate_QuizzedOn(t *testing.T) {
	today := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	sameDay := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate QuizCandidate
		want      bool
	}{
		{"never quizzed", QuizCandidate{ID: "1", Word: "apple"}, false},
		{"quizzed today", QuizCandidate{ID: "2", Word: "pear", LastQuizDate: &sameDay}, true},
		{"quizzed yesterday", QuizCandidate{ID: "3", Word: "plum", LastQuizDate: &yesterday}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.QuizzedOn(today))
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := assert.AnError
	err := NewMalformedQuizError("bad reply", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, ErrMalformedQuiz))
	assert.False(t, HasCode(err, ErrNoModel))
	assert.Equal(t, "bad reply: "+cause.Error(), err.Error())
}
