package service

import (
	"fmt"
	"strings"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/timetable"
)

// Plain-text renderers for the Telegram notifier. The Discord bot builds
// embeds instead; both consume the same merged blocks.

// FormatMorningText renders the morning reminder.
func FormatMorningText(blocks []dto.ClassBlock) string {
	if len(blocks) == 0 {
		return "🌅 Good Morning! 📅 No classes scheduled for today!"
	}

	var b strings.Builder
	b.WriteString("🌅 Good Morning! Here are your classes for today:\n\n")
	for _, c := range blocks {
		fmt.Fprintf(&b, "📚 %s (%s)\n", c.ClassName, c.ClassCode)
		fmt.Fprintf(&b, "⏰ Time: %s - %s\n", timetable.ClockAM(c.StartTime), timetable.ClockAM(c.EndTime))
		fmt.Fprintf(&b, "📍 %s\n", c.Location)
		if c.BringItems != "" {
			fmt.Fprintf(&b, "📝 Bring: %s\n", c.BringItems)
		}
		b.WriteString("\n")
	}
	b.WriteString("Have a great day! 🎓")
	return b.String()
}

// FormatEveningText renders the end-of-day summary: today's completed
// classes (judged by uploaded notes) plus tomorrow's merged schedule.
func FormatEveningText(tomorrow []dto.ClassBlock, completed []dto.CompletedClass) string {
	var b strings.Builder
	b.WriteString("🌙 End of Day Summary\n\n")

	if len(completed) > 0 {
		b.WriteString("📚 Classes completed today:\n")
		for _, c := range completed {
			fmt.Fprintf(&b, "✅ %s (%s) - notes uploaded\n", c.ClassName, c.ClassCode)
		}
		b.WriteString("\n")
	}

	if len(tomorrow) == 0 {
		b.WriteString("📅 No classes scheduled for tomorrow!\n\n")
	} else {
		b.WriteString("📅 Tomorrow's Classes:\n")
		for _, c := range tomorrow {
			fmt.Fprintf(&b, "📚 %s (%s)\n", c.ClassName, c.ClassCode)
			fmt.Fprintf(&b, "⏰ Time: %s - %s\n", timetable.ClockAM(c.StartTime), timetable.ClockAM(c.EndTime))
			fmt.Fprintf(&b, "📍 %s\n", c.Location)
			if c.BringItems != "" {
				fmt.Fprintf(&b, "📝 Bring: %s\n", c.BringItems)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("Sweet dreams! 😴")
	return b.String()
}
