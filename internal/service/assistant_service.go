package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
)

// noPermissionReply answers every sender that is not the configured owner.
const noPermissionReply = "You don't have permission to use this command."

// toolPrompt is the static tool-description context handed to the model on
// the fallback path. The described tool use is prompt text only: the system
// never executes model-proposed tool calls, the free-text reply goes back
// verbatim.
const toolPrompt = `You are Masar Assistant, a personal AI academic companion. You can help with:

1. Academic scheduling and reminders
2. Study tips and time management
3. Course-related questions
4. General academic support

**Available Tools:**
- set_reminder(class_code, item): Set reminder for specific class
- get_schedule(days_ahead): Get upcoming schedule
- upload_note(class_code, note_content, note_type): Upload note for class
- get_notes(class_code): Get notes for class
- create_reminder(title, description, remind_date, remind_time): Create custom reminder

Be helpful, friendly, and academic-focused.

User Message: %s`

// AssistantService is the chat-facing dispatcher: it authorises the sender,
// tries the structured command forms first ("remind 1202 laptop"), then
// detects intent by an ordered rule table of substring predicates, and falls
// through to the language model for anything unmatched.
type AssistantService interface {
	// HandleMessage authorises senderID and routes text. Always returns a
	// user-renderable reply; remote failures become apologies, not errors.
	HandleMessage(ctx context.Context, senderID, ownerSenderID, text string) string
	// SetBringReminder amends bring_items for a class code.
	SetBringReminder(ctx context.Context, classCode, item string) string
	// TodayScheduleText renders today's merged schedule as chat text.
	TodayScheduleText(ctx context.Context) string
	// CreateReminder stores a one-off reminder ("YYYY-MM-DD" + "HH:MM").
	CreateReminder(ctx context.Context, title, description, date, clock string) string
	// Ask forwards a free-text question to the model.
	Ask(ctx context.Context, question string) string
}

// rule is one (predicate, handler) pair of the intent table. Rules are
// evaluated in order; the first match wins, so ordering is part of the
// contract and tested as such.
type rule struct {
	name    string
	match   func(lower string) bool
	handler func(ctx context.Context, text string) string
}

type assistantService struct {
	repo     *repository.Repository
	schedule ScheduleService
	notes    NotesService
	answerer TextAnswerer
	ownerID  string
	loc      *time.Location
	logger   *zap.Logger
	rules    []rule
}

// NewAssistantService builds an AssistantService.
func NewAssistantService(
	repo *repository.Repository,
	schedule ScheduleService,
	notes NotesService,
	answerer TextAnswerer,
	ownerID string,
	loc *time.Location,
	logger *zap.Logger,
) AssistantService {
	s := &assistantService{
		repo:     repo,
		schedule: schedule,
		notes:    notes,
		answerer: answerer,
		ownerID:  ownerID,
		loc:      loc,
		logger:   logger,
	}
	s.rules = []rule{
		{
			name: "bring_reminder",
			match: func(l string) bool {
				return strings.Contains(l, "remind") && strings.Contains(l, "bring")
			},
			handler: s.handleBringReminder,
		},
		{
			name: "schedule",
			match: func(l string) bool {
				return strings.Contains(l, "schedule") || strings.Contains(l, "classes")
			},
			handler: func(ctx context.Context, _ string) string { return s.TodayScheduleText(ctx) },
		},
		{
			name: "upload_note",
			match: func(l string) bool {
				return strings.Contains(l, "upload") && strings.Contains(l, "note")
			},
			handler: s.handleUploadNote,
		},
		{
			name: "show_notes",
			match: func(l string) bool {
				return strings.Contains(l, "notes") &&
					(strings.Contains(l, "show") || strings.Contains(l, "get"))
			},
			handler: s.handleShowNotes,
		},
	}
	return s
}

func (s *assistantService) HandleMessage(ctx context.Context, senderID, ownerSenderID, text string) string {
	if senderID != ownerSenderID {
		return noPermissionReply
	}

	if reply, ok := s.tryCommand(ctx, text); ok {
		return reply
	}

	lower := strings.ToLower(text)
	for _, r := range s.rules {
		if r.match(lower) {
			return r.handler(ctx, text)
		}
	}
	return s.Ask(ctx, text)
}

// ── Structured commands ──

// tryCommand dispatches on the first word, mirroring the `!command args`
// chat surface. Unrecognised or incomplete forms report false so the text
// continues into the intent table.
func (s *assistantService) tryCommand(ctx context.Context, text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}

	switch strings.ToLower(fields[0]) {
	case "remind":
		// remind <class_code> <item...>. Natural phrasings ("remind me to
		// bring...") carry no class code in second position and continue
		// into the intent table instead.
		if len(fields) >= 3 && s.isKnownClassCode(ctx, fields[1]) {
			return s.SetBringReminder(ctx, fields[1], strings.Join(fields[2:], " ")), true
		}
		return "", false
	case "schedule":
		return s.TodayScheduleText(ctx), true
	case "ask":
		if len(fields) < 2 {
			return "❌ Usage: ask <question>", true
		}
		return s.Ask(ctx, strings.Join(fields[1:], " ")), true
	case "reminder":
		// reminder <YYYY-MM-DD> <HH:MM> <title...>
		if len(fields) < 4 {
			return "❌ Usage: reminder <YYYY-MM-DD> <HH:MM> <title>", true
		}
		return s.CreateReminder(ctx, strings.Join(fields[3:], " "), "", fields[1], fields[2]), true
	case "reminders":
		return s.listReminders(ctx), true
	}
	return "", false
}

func (s *assistantService) isKnownClassCode(ctx context.Context, word string) bool {
	classes, err := s.repo.Class.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list classes for command dispatch failed", zap.Error(err))
		return false
	}
	w := strings.ToUpper(strings.TrimSpace(word))
	for _, c := range classes {
		if strings.ToUpper(c.ClassCode) == w {
			return true
		}
	}
	return false
}

func (s *assistantService) listReminders(ctx context.Context) string {
	reminders, err := s.repo.Reminder.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list reminders failed", zap.Error(err))
		return "❌ Error getting reminders."
	}
	if len(reminders) == 0 {
		return "⏰ No reminders set!"
	}

	var b strings.Builder
	b.WriteString("⏰ **Your Reminders:**\n")
	for _, r := range reminders {
		fmt.Fprintf(&b, "📌 %s (%s)\n", r.Title, r.RemindDate.In(s.loc).Format("2006-01-02 15:04"))
		if r.Description != "" {
			fmt.Fprintf(&b, "📝 %s\n", r.Description)
		}
	}
	return b.String()
}

// ── Rule handlers ──

func (s *assistantService) handleBringReminder(ctx context.Context, text string) string {
	code, rest := s.findClassCode(ctx, text)
	if code == "" {
		return "❌ Please mention the class code, e.g. 'remind me to bring my laptop for 1202'"
	}
	item := itemAfterBring(rest)
	if item == "" {
		return "❌ What should I remind you to bring?"
	}
	return s.SetBringReminder(ctx, code, item)
}

func (s *assistantService) handleUploadNote(ctx context.Context, text string) string {
	code, _ := s.findClassCode(ctx, text)
	if code == "" {
		return "❌ Please specify which class (e.g., 'upload note for 1001')"
	}
	note, err := s.notes.Upload(ctx, code, "Note uploaded via chat", "text")
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			return fmt.Sprintf("❌ Class %s not found.", code)
		}
		s.logger.Error("note upload failed", zap.Error(err))
		return fmt.Sprintf("❌ Failed to upload note for %s.", code)
	}
	return fmt.Sprintf("✅ Note uploaded for %s", note.ClassCode)
}

func (s *assistantService) handleShowNotes(ctx context.Context, text string) string {
	code, _ := s.findClassCode(ctx, text)
	notes, err := s.notes.List(ctx, code)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			return fmt.Sprintf("❌ Class %s not found.", code)
		}
		s.logger.Error("list notes failed", zap.Error(err))
		return "❌ Error getting notes."
	}
	if len(notes) == 0 {
		return "📝 No notes found!"
	}

	var b strings.Builder
	b.WriteString("📝 **Your Notes:**\n")
	for _, n := range notes {
		fmt.Fprintf(&b, "📚 **%s** (%s)\n", n.ClassName, n.ClassCode)
		fmt.Fprintf(&b, "📝 %s\n", n.NoteContent)
		fmt.Fprintf(&b, "📅 %s\n\n", n.UploadDate)
	}
	return b.String()
}

// ── Command-surface operations ──

func (s *assistantService) SetBringReminder(ctx context.Context, classCode, item string) string {
	n, err := s.repo.Class.UpdateBringItems(ctx, s.ownerID, strings.ToUpper(strings.TrimSpace(classCode)), item)
	if err != nil {
		s.logger.Error("set bring reminder failed", zap.Error(err))
		return fmt.Sprintf("❌ Error setting reminder: %v", err)
	}
	if n == 0 {
		return fmt.Sprintf("❌ Class %s not found. Make sure the class code is correct.", classCode)
	}
	return fmt.Sprintf("✅ Reminder set for %s: Don't forget to bring **%s**!", classCode, item)
}

func (s *assistantService) TodayScheduleText(ctx context.Context) string {
	resp, err := s.schedule.TodayBlocks(ctx, time.Now())
	if err != nil {
		return "❌ Error getting schedule."
	}
	if len(resp.Classes) == 0 {
		return "📅 No classes scheduled for today!"
	}

	var b strings.Builder
	b.WriteString("📅 **Your Schedule:**\n")
	for _, c := range resp.Classes {
		fmt.Fprintf(&b, "📚 **%s** (%s)\n", c.ClassName, c.ClassCode)
		fmt.Fprintf(&b, "⏰ %s - %s\n", c.StartTime, c.EndTime)
		fmt.Fprintf(&b, "📍 %s\n", c.Location)
		if c.BringItems != "" {
			fmt.Fprintf(&b, "📝 Bring: %s\n", c.BringItems)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *assistantService) CreateReminder(ctx context.Context, title, description, date, clock string) string {
	when, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.loc)
	if err != nil {
		return fmt.Sprintf("❌ Invalid date or time (expected YYYY-MM-DD HH:MM): %v", err)
	}

	reminder := model.Reminder{
		UserID:      s.ownerID,
		Title:       title,
		Description: description,
		RemindDate:  when,
	}
	if err := s.repo.Reminder.Create(ctx, &reminder); err != nil {
		s.logger.Error("create reminder failed", zap.Error(err))
		return "❌ Failed to create reminder."
	}
	return fmt.Sprintf("✅ Reminder created: '%s' for %s at %s", title, date, clock)
}

func (s *assistantService) Ask(ctx context.Context, question string) string {
	if s.answerer == nil {
		return "Sorry, AI features are not available. Please check the model configuration."
	}
	reply, err := s.answerer.Answer(ctx, fmt.Sprintf(toolPrompt, question))
	if err != nil {
		s.logger.Warn("model fallback failed", zap.Error(err))
		return "Sorry, I'm having trouble processing your request right now. Please try again later."
	}
	return reply
}

// ── Text helpers ──

// findClassCode scans the message words against the owner's known class
// codes. Returns the matched code and the original text for item extraction.
func (s *assistantService) findClassCode(ctx context.Context, text string) (string, string) {
	classes, err := s.repo.Class.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list classes for code scan failed", zap.Error(err))
		return "", text
	}

	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[strings.ToUpper(c.ClassCode)] = true
	}

	for _, word := range strings.Fields(text) {
		w := strings.ToUpper(strings.Trim(word, ".,!?()"))
		if known[w] {
			return w, text
		}
	}
	return "", text
}

// itemAfterBring joins the words following the first "bring".
func itemAfterBring(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if strings.EqualFold(strings.Trim(w, ".,!?"), "bring") {
			item := strings.Join(words[i+1:], " ")
			return strings.TrimSuffix(strings.TrimSpace(item), ".")
		}
	}
	return ""
}
