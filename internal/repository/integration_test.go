//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test setup: requires a throwaway PostgreSQL instance
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

const testOwner = "00000000-0000-0000-0000-000000000001"

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=masar password=masar dbname=masar_test sslmode=disable TimeZone=Asia/Riyadh"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&model.Class{}, &model.Reminder{}, &model.NoteUpload{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testDB.Exec("DELETE FROM notes_uploads")
	testDB.Exec("DELETE FROM reminders")
	testDB.Exec("DELETE FROM classes")

	os.Exit(code)
}

func cleanTables(t *testing.T) {
	t.Helper()
	testDB.Exec("DELETE FROM notes_uploads")
	testDB.Exec("DELETE FROM reminders")
	testDB.Exec("DELETE FROM classes")
}

func TestClassRepo_DedupInsert(t *testing.T) {
	cleanTables(t)
	repo := repository.NewClassRepo(testDB)
	ctx := context.Background()

	row := model.Class{
		UserID: testOwner, ClassCode: "1001", ClassName: "English",
		DaysOfWeek: "Sun", StartTime: "08:00:00", EndTime: "09:50:00",
	}
	if err := repo.BatchInsert(ctx, []model.Class{row}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	exists, err := repo.ExistsByOwnerCodeDay(ctx, testOwner, "1001", "Sun")
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if !exists {
		t.Fatal("inserted row not found by (owner, code, day)")
	}

	// Second insert of the same triple must leave exactly one stored row.
	if err := repo.BatchInsert(ctx, []model.Class{row}); err != nil {
		t.Fatalf("second insert: %v", err)
	}
	var count int64
	testDB.Model(&model.Class{}).
		Where("user_id = ? AND class_code = ? AND days_of_week = ?", testOwner, "1001", "Sun").
		Count(&count)
	if count != 1 {
		t.Errorf("expected 1 row after duplicate insert, got %d", count)
	}
}

func TestClassRepo_UpdateBringItems(t *testing.T) {
	cleanTables(t)
	repo := repository.NewClassRepo(testDB)
	ctx := context.Background()

	row := model.Class{
		UserID: testOwner, ClassCode: "1202", ClassName: "Computer Skills",
		DaysOfWeek: "Tue", StartTime: "10:00:00", EndTime: "11:50:00",
	}
	if err := repo.BatchInsert(ctx, []model.Class{row}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := repo.UpdateBringItems(ctx, testOwner, "1202", "laptop")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row updated, got %d", n)
	}

	n, err = repo.UpdateBringItems(ctx, testOwner, "9999", "laptop")
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows for unknown class, got %d", n)
	}
}

func TestNoteRepo_ListUploadedSince(t *testing.T) {
	cleanTables(t)
	classRepo := repository.NewClassRepo(testDB)
	noteRepo := repository.NewNoteRepo(testDB)
	ctx := context.Background()

	class := model.Class{
		UserID: testOwner, ClassCode: "1103", ClassName: "Statistics",
		DaysOfWeek: "Sun", StartTime: "10:00:00", EndTime: "11:50:00",
	}
	if err := classRepo.BatchInsert(ctx, []model.Class{class}); err != nil {
		t.Fatalf("insert class: %v", err)
	}
	stored, err := classRepo.GetByOwnerAndCode(ctx, testOwner, "1103")
	if err != nil {
		t.Fatalf("get class: %v", err)
	}

	note := model.NoteUpload{
		UserID: testOwner, ClassID: stored.ID,
		NoteContent: "lecture notes", NoteType: "text",
		UploadDate: time.Now(),
	}
	if err := noteRepo.Create(ctx, &note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	since := time.Now().Add(-time.Hour)
	notes, err := noteRepo.ListUploadedSince(ctx, testOwner, since)
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	if notes[0].Class == nil || notes[0].Class.ClassCode != "1103" {
		t.Errorf("class not preloaded: %+v", notes[0].Class)
	}
}
