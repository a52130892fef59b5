package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDryRunSink_LogsInsteadOfWriting(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewDryRunSink(zap.New(core))

	err := sink.WriteQuiz(context.Background(),
		domain.QuizCandidate{ID: "p1", Word: "lucid"},
		domain.RenderedQuiz{Text: "Def: clear\n\nA. lucid", CorrectLabel: "A"},
		time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	entries := logs.FilterMessage("Dry run: quiz not written").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "lucid", fields["word"])
	assert.Equal(t, "A", fields["answer"])
	assert.Equal(t, "2026-10-19", fields["date"])
}
