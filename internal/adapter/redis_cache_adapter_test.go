package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/cache"
	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.GenerateCacheKey("gemini", "model", "selected")

	tests := []struct {
		name    string
		setup   func()
		want    string
		wantErr error
	}{
		{
			name:  "hit",
			setup: func() { mock.ExpectGet(key).SetVal("gemini-1.5-flash") },
			want:  "gemini-1.5-flash",
		},
		{
			name:    "miss maps to ErrCacheMiss",
			setup:   func() { mock.ExpectGet(key).RedisNil() },
			wantErr: domain.ErrCacheMiss,
		},
		{
			name:    "redis failure is passed through",
			setup:   func() { mock.ExpectGet(key).SetErr(errors.New("connection reset")) },
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			got, err := adapter.Get(ctx, key)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisCacheAdapter_SetQuizMarker(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := cache.QuizMarkerKey("page-1", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))

	mock.ExpectSet(key, "B", 36*time.Hour).SetVal("OK")
	assert.NoError(t, adapter.Set(ctx, key, "B", 36*time.Hour))

	mock.ExpectSet(key, "B", 36*time.Hour).SetErr(errors.New("READONLY"))
	assert.EqualError(t, adapter.Set(ctx, key, "B", 36*time.Hour), "READONLY")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_DeleteAndPing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectDel("vocabquiz:quiz:page:gone:2026-10-19").SetVal(0)
	assert.NoError(t, adapter.Delete(ctx, "vocabquiz:quiz:page:gone:2026-10-19"), "deleting a missing key is not an error")

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	mock.ExpectPing().SetErr(redis.ErrClosed)
	assert.ErrorIs(t, adapter.Ping(ctx), redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
