package survey

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/civicpulse/campaign/config"
	"github.com/civicpulse/campaign/database"
	"github.com/stretchr/testify/require"
)

// testService opens a fresh migrated database in a temp directory. A file is
// used rather than :memory: because the pool hands out more than one
// connection.
func testService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(db)
}

func createUser(t *testing.T, s *Service, name, phone string) int {
	t.Helper()
	var id int
	err := s.db.QueryRow(
		"INSERT INTO user (name, phone) VALUES (?, ?) RETURNING id",
		name, phone,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func createTestSurvey(t *testing.T, s *Service, title string, active bool) Survey {
	t.Helper()
	sv, err := s.CreateSurvey(context.Background(), Survey{Title: title, IsActive: active})
	require.NoError(t, err)
	return sv
}

func createTestQuestion(t *testing.T, s *Service, q Question) Question {
	t.Helper()
	inserted, err := s.CreateQuestion(context.Background(), q)
	require.NoError(t, err)
	return inserted
}
