package repository

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/planwheel/planwheel-server/internal/model"
)

// newTestDB opens a fresh in-memory database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Task{}, &model.TimeBlock{}, &model.TaskOrder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUserAndTask(t *testing.T, db *gorm.DB, email string) (*model.User, *model.Task) {
	t.Helper()
	user := &model.User{Email: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	task := &model.Task{UserID: user.ID, Name: "write report", Status: model.StatusTodo}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return user, task
}
