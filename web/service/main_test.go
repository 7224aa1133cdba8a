package service

import (
	"os"
	"path/filepath"
	"testing"

	"authboard/database"
	"authboard/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "authboard-service-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("AB_LOG_FOLDER", dir)
	logger.InitLogger(logging.DEBUG)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// setupTestDB opens a fresh sqlite database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDB(); err != nil {
			t.Logf("close test db: %v", err)
		}
	})
}

func countUsers(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := database.GetDB().Table("user").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}
