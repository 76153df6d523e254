package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
)

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes []model.Class
	// listErr forces ListByOwner to fail.
	listErr error
	// inserted collects BatchInsert batches.
	inserted [][]model.Class
}

func newMockClassRepo(classes ...model.Class) *mockClassRepo {
	for i := range classes {
		if classes[i].ID == "" {
			classes[i].ID = fmt.Sprintf("class-%d", i)
		}
		classes[i].Active = true
	}
	return &mockClassRepo{classes: classes}
}

func (m *mockClassRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Class, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.Class
	for _, c := range m.classes {
		if c.UserID == ownerID && c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockClassRepo) GetByOwnerAndCode(_ context.Context, ownerID, classCode string) (*model.Class, error) {
	for i, c := range m.classes {
		if c.UserID == ownerID && c.ClassCode == classCode {
			return &m.classes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) ExistsByOwnerCodeDay(_ context.Context, ownerID, classCode, day string) (bool, error) {
	for _, c := range m.classes {
		if c.UserID == ownerID && c.ClassCode == classCode && c.DaysOfWeek == day {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClassRepo) BatchInsert(_ context.Context, classes []model.Class) error {
	if len(classes) == 0 {
		return nil
	}
	m.inserted = append(m.inserted, classes)
	for i, c := range classes {
		if c.ID == "" {
			c.ID = fmt.Sprintf("inserted-%d-%d", len(m.inserted), i)
		}
		m.classes = append(m.classes, c)
	}
	return nil
}

func (m *mockClassRepo) UpdateBringItems(_ context.Context, ownerID, classCode, items string) (int64, error) {
	var n int64
	for i, c := range m.classes {
		if c.UserID == ownerID && c.ClassCode == classCode {
			m.classes[i].BringItems = items
			n++
		}
	}
	return n, nil
}

// ── Mock ReminderRepository ──

type mockReminderRepo struct {
	reminders []model.Reminder
	createErr error
}

func (m *mockReminderRepo) Create(_ context.Context, reminder *model.Reminder) error {
	if m.createErr != nil {
		return m.createErr
	}
	reminder.ID = fmt.Sprintf("rem-%d", len(m.reminders))
	m.reminders = append(m.reminders, *reminder)
	return nil
}

func (m *mockReminderRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Reminder, error) {
	var out []model.Reminder
	for _, r := range m.reminders {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── Mock NoteRepository ──

type mockNoteRepo struct {
	notes     []model.NoteUpload
	classByID map[string]*model.Class
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{classByID: make(map[string]*model.Class)}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.NoteUpload) error {
	note.ID = fmt.Sprintf("note-%d", len(m.notes))
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	m.notes = append(m.notes, *note)
	return nil
}

func (m *mockNoteRepo) ListByOwner(_ context.Context, ownerID, classID string) ([]model.NoteUpload, error) {
	var out []model.NoteUpload
	for _, n := range m.notes {
		if n.UserID != ownerID {
			continue
		}
		if classID != "" && n.ClassID != classID {
			continue
		}
		n.Class = m.classByID[n.ClassID]
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNoteRepo) ListUploadedSince(_ context.Context, ownerID string, since time.Time) ([]model.NoteUpload, error) {
	var out []model.NoteUpload
	for _, n := range m.notes {
		if n.UserID == ownerID && !n.CreatedAt.Before(since) {
			n.Class = m.classByID[n.ClassID]
			out = append(out, n)
		}
	}
	return out, nil
}

// testRepo bundles the mocks into a Repository aggregate.
func testRepo(classRepo *mockClassRepo, noteRepo *mockNoteRepo) *repository.Repository {
	if classRepo == nil {
		classRepo = newMockClassRepo()
	}
	if noteRepo == nil {
		noteRepo = newMockNoteRepo()
	}
	return &repository.Repository{
		Class:    classRepo,
		Reminder: &mockReminderRepo{},
		Note:     noteRepo,
	}
}
