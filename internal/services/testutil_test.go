package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studywise/studywise-backend/internal/ai"
	"github.com/studywise/studywise-backend/internal/ai/engine/mock"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/requestdata"
	"github.com/studywise/studywise-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.StudyPlan{},
		&types.StudySession{},
		&types.Reminder{},
		&types.CounselingSession{},
		&types.ProgressRecord{},
	))
	return gdb
}

func newTestUser(t *testing.T, gdb *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		Password: "not-a-real-hash",
		FullName: "Test User",
		IsActive: true,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func ctxForUser(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

// startTestGate runs a real gate over the mock engine so service tests
// exercise the same queueing path production uses.
func startTestGate(t *testing.T, eng *mock.Engine) *ai.Gate {
	t.Helper()
	gate := ai.NewGate(eng, ai.GateConfig{
		DefaultWait:     2 * time.Second,
		GenerateTimeout: 2 * time.Second,
	}, newTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	gate.Start(ctx)
	return gate
}
