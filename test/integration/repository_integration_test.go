package integration

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cihanuluisik/Dge-Advisor/internal/constant"
	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/implementation"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/specification"
	"github.com/cihanuluisik/Dge-Advisor/pkg/database"
)

// Needs a running Postgres with the pgvector extension and the migrations
// applied (cmd/migrate). Skipped when DB_CONNECTION_STRING is unset.
func TestRepositories(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	sessions := implementation.NewChatSessionRepository(gormDB)
	messages := implementation.NewChatMessageRepository(gormDB)
	chunks := implementation.NewDocumentChunkRepository(gormDB)

	ctx := context.Background()
	chatId := "chat_itest_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	t.Run("EnsureSession is idempotent", func(t *testing.T) {
		assert.NoError(t, sessions.EnsureSession(ctx, chatId))
		assert.NoError(t, sessions.EnsureSession(ctx, chatId))
	})

	t.Run("RecentHistory returns chronological window", func(t *testing.T) {
		turns := []struct {
			role    string
			content string
		}{
			{constant.ChatMessageRoleUser, "first question"},
			{constant.ChatMessageRoleAssistant, "first answer"},
			{constant.ChatMessageRoleUser, "second question"},
			{constant.ChatMessageRoleAssistant, "second answer"},
		}
		for _, turn := range turns {
			err := messages.Create(ctx, &entity.ChatMessage{
				ChatId:  chatId,
				Message: turn.content,
				Role:    turn.role,
			})
			require.NoError(t, err)
		}

		history, err := messages.RecentHistory(ctx, chatId, 3)
		require.NoError(t, err)
		require.Len(t, history, 3)

		// Oldest first within the window; the window holds the newest turns.
		assert.Equal(t, "first answer", history[0].Message)
		assert.Equal(t, "second question", history[1].Message)
		assert.Equal(t, "second answer", history[2].Message)
	})

	t.Run("RecentHistory of unknown session is empty", func(t *testing.T) {
		history, err := messages.RecentHistory(ctx, "chat_itest_never_used", 3)
		assert.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Count by chat id", func(t *testing.T) {
		count, err := messages.Count(ctx, specification.ByChatID{ChatID: chatId})
		assert.NoError(t, err)
		assert.EqualValues(t, 4, count)
	})

	t.Run("Hybrid search over stored chunks", func(t *testing.T) {
		// Constant vectors so dense similarity is deterministic without an
		// embedding service.
		unit := make([]float32, 768)
		unit[0] = 1

		orthogonal := make([]float32, 768)
		orthogonal[1] = 1

		source := "itest-" + uuid.New().String() + ".pdf"
		err := chunks.CreateBulk(ctx, []*entity.DocumentChunk{
			{DocSource: source, PageNumber: 1, Content: "procurement thresholds for tenders", Metadata: map[string]interface{}{"file_name": "itest.md"}},
			{DocSource: source, PageNumber: 2, Content: "annual leave entitlements", Metadata: map[string]interface{}{"file_name": "itest.md"}},
		}, [][]float32{unit, orthogonal})
		require.NoError(t, err)

		results, err := chunks.HybridSearch(ctx, unit, "procurement thresholds", contract.HybridSearchParams{
			DenseTopK:  2,
			SparseTopK: 1,
			Alpha:      0.7,
		})
		require.NoError(t, err)
		require.NotEmpty(t, results)

		best := results[0]
		require.NotNil(t, best.Chunk)
		assert.Equal(t, 1, best.Chunk.PageNumber)
		assert.Greater(t, best.Score, 0.5)

		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})
}
