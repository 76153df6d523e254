package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// ── Mock answerer ──

type mockAnswerer struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockAnswerer) Answer(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func newAssistant(classRepo *mockClassRepo, noteRepo *mockNoteRepo, answerer TextAnswerer) AssistantService {
	repo := testRepo(classRepo, noteRepo)
	logger := zap.NewNop()
	schedule := NewScheduleService(repo, testOwner, time.UTC, logger)
	notes := NewNotesService(repo, testOwner, time.UTC, logger)
	return NewAssistantService(repo, schedule, notes, answerer, testOwner, time.UTC, logger)
}

func TestHandleMessage_RejectsNonOwner(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.HandleMessage(context.Background(), "stranger-42", "owner-discord-id", "show my schedule")
	if reply != noPermissionReply {
		t.Errorf("non-owner got %q", reply)
	}
}

func TestHandleMessage_RemindCommand(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1202", "Math", "Tue", "10:00:00", "11:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	// Bare command form: no "bring" anywhere in the text.
	reply := svc.HandleMessage(context.Background(), "owner", "owner", "remind 1202 laptop")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "1202") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if classRepo.classes[0].BringItems != "laptop" {
		t.Errorf("bring_items = %q, want laptop", classRepo.classes[0].BringItems)
	}
}

func TestHandleMessage_RemindCommandMultiWordItem(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1202", "Math", "Tue", "10:00:00", "11:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	svc.HandleMessage(context.Background(), "owner", "owner", "remind 1202 graphing calculator")
	if classRepo.classes[0].BringItems != "graphing calculator" {
		t.Errorf("bring_items = %q", classRepo.classes[0].BringItems)
	}
}

func TestHandleMessage_RemindWithoutCodeFallsToIntentTable(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1202", "Math", "Tue", "10:00:00", "11:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	// Second word is not a class code, so the natural-language rule handles it.
	reply := svc.HandleMessage(context.Background(), "owner", "owner",
		"remind me to bring my laptop for 1202")
	if !strings.Contains(reply, "✅") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if classRepo.classes[0].BringItems == "" {
		t.Errorf("bring_items not updated via intent table")
	}
}

func TestHandleMessage_ScheduleCommand(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "schedule")
	if !strings.Contains(reply, "📅") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleMessage_AskCommand(t *testing.T) {
	answerer := &mockAnswerer{reply: "Flashcards work well."}
	svc := newAssistant(nil, nil, answerer)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "ask what is spaced repetition?")
	if reply != "Flashcards work well." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if len(answerer.prompts) != 1 || !strings.Contains(answerer.prompts[0], "what is spaced repetition?") {
		t.Errorf("question not forwarded: %v", answerer.prompts)
	}

	reply = svc.HandleMessage(context.Background(), "owner", "owner", "ask")
	if !strings.Contains(reply, "Usage") {
		t.Errorf("bare ask should print usage, got %q", reply)
	}
}

func TestHandleMessage_ReminderCommandCreatesAndLists(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner",
		"reminder 2026-09-15 09:00 Midterm exam")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "Midterm exam") {
		t.Fatalf("unexpected reply: %q", reply)
	}

	reply = svc.HandleMessage(context.Background(), "owner", "owner", "reminders")
	if !strings.Contains(reply, "Midterm exam") || !strings.Contains(reply, "2026-09-15 09:00") {
		t.Errorf("stored reminder not listed: %q", reply)
	}

	reply = svc.HandleMessage(context.Background(), "owner", "owner", "reminder tomorrow")
	if !strings.Contains(reply, "Usage") {
		t.Errorf("incomplete form should print usage, got %q", reply)
	}
}

func TestHandleMessage_BringReminderWinsOverSchedule(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1202", "Math", "Tue", "10:00:00", "11:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	// Mentions "classes" too, but the bring rule is checked first.
	reply := svc.HandleMessage(context.Background(), "owner", "owner",
		"remind me to bring my calculator for 1202 classes")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "1202") {
		t.Errorf("unexpected reply: %q", reply)
	}
	if classRepo.classes[0].BringItems == "" {
		t.Errorf("bring_items not updated")
	}
}

func TestHandleMessage_BringReminderNeedsClassCode(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner",
		"remind me to bring my laptop")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "class code") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleMessage_ScheduleIntent(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "what's my schedule?")
	today := time.Now().UTC().Format("Mon")
	if today == "Sun" {
		if !strings.Contains(reply, "1001") {
			t.Errorf("expected today's classes, got %q", reply)
		}
	} else if !strings.Contains(reply, "No classes") {
		t.Errorf("expected empty-day reply, got %q", reply)
	}
}

func TestHandleMessage_UploadNoteIntent(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
	)
	noteRepo := newMockNoteRepo()
	svc := newAssistant(classRepo, noteRepo, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "upload note for 1001")
	if !strings.Contains(reply, "✅") {
		t.Errorf("unexpected reply: %q", reply)
	}
	if len(noteRepo.notes) != 1 {
		t.Fatalf("expected 1 stored note, got %d", len(noteRepo.notes))
	}
}

func TestHandleMessage_ShowNotesIntent(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
	)
	noteRepo := newMockNoteRepo()
	noteRepo.classByID["class-0"] = &classRepo.classes[0]
	svc := newAssistant(classRepo, noteRepo, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "show my notes")
	if reply != "📝 No notes found!" {
		t.Errorf("unexpected empty reply: %q", reply)
	}

	if _, err := NewNotesService(testRepo(classRepo, noteRepo), testOwner, time.UTC, zap.NewNop()).
		Upload(context.Background(), "1001", "chapter summary", "text"); err != nil {
		t.Fatalf("seed note: %v", err)
	}
	reply = svc.HandleMessage(context.Background(), "owner", "owner", "show my notes")
	if !strings.Contains(reply, "chapter summary") || !strings.Contains(reply, "1001") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleMessage_FallbackUsesModel(t *testing.T) {
	answerer := &mockAnswerer{reply: "Study in 25-minute blocks."}
	svc := newAssistant(nil, nil, answerer)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "how should I study for finals?")
	if reply != "Study in 25-minute blocks." {
		t.Errorf("unexpected reply: %q", reply)
	}
	if len(answerer.prompts) != 1 || !strings.Contains(answerer.prompts[0], "how should I study for finals?") {
		t.Errorf("question not embedded in prompt: %v", answerer.prompts)
	}
}

func TestHandleMessage_FallbackWithoutModel(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.HandleMessage(context.Background(), "owner", "owner", "hello there")
	if !strings.Contains(reply, "not available") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestSetBringReminder_UnknownClass(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.SetBringReminder(context.Background(), "9999", "laptop")
	if !strings.Contains(reply, "❌") || !strings.Contains(reply, "not found") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestSetBringReminder_LowercaseCode(t *testing.T) {
	classRepo := newMockClassRepo(
		ownerClass("CS101", "Programming", "Tue", "10:00:00", "11:50:00"),
	)
	svc := newAssistant(classRepo, nil, nil)

	reply := svc.SetBringReminder(context.Background(), " cs101 ", "laptop")
	if !strings.Contains(reply, "✅") {
		t.Errorf("unexpected reply: %q", reply)
	}
	if classRepo.classes[0].BringItems != "laptop" {
		t.Errorf("bring_items = %q", classRepo.classes[0].BringItems)
	}
}

func TestCreateReminder(t *testing.T) {
	svc := newAssistant(nil, nil, nil)

	reply := svc.CreateReminder(context.Background(), "Midterm", "chapters 1-4", "2026-09-15", "09:00")
	if !strings.Contains(reply, "✅") || !strings.Contains(reply, "Midterm") {
		t.Errorf("unexpected reply: %q", reply)
	}

	reply = svc.CreateReminder(context.Background(), "Midterm", "", "15/09/2026", "09:00")
	if !strings.Contains(reply, "❌") {
		t.Errorf("bad date accepted: %q", reply)
	}
}

func TestItemAfterBring(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"remind me to bring my laptop for 1202", "my laptop for 1202"},
		{"please bring calculator.", "calculator"},
		{"remind me about 1202", ""},
	}
	for _, c := range cases {
		if got := itemAfterBring(c.text); got != c.want {
			t.Errorf("itemAfterBring(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
