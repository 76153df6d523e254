package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/internal/timetable"
)

// embed colors, morning sun / evening moon.
const (
	colorMorning = 0xFFD700
	colorEvening = 0x4B0082
)

// Discord is the gateway bot: it answers the owner's messages through the
// assistant dispatcher and posts the two daily reminders as embeds. It
// satisfies notifier.Sender.
type Discord struct {
	session   *discordgo.Session
	assistant service.AssistantService
	cfg       *config.DiscordConfig
	logger    *zap.Logger
}

// NewDiscord builds the bot and registers its gateway handlers. Call Open to
// connect.
func NewDiscord(cfg *config.DiscordConfig, assistant service.AssistantService, logger *zap.Logger) (*Discord, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	d := &Discord{
		session:   session,
		assistant: assistant,
		cfg:       cfg,
		logger:    logger,
	}
	session.AddHandler(d.onReady)
	session.AddHandler(d.onMessageCreate)
	return d, nil
}

// Open connects to the gateway.
func (d *Discord) Open() error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	return nil
}

// Close disconnects.
func (d *Discord) Close() error {
	return d.session.Close()
}

func (d *Discord) onReady(s *discordgo.Session, r *discordgo.Ready) {
	d.logger.Info("discord session ready",
		zap.String("username", r.User.Username),
		zap.String("channel_id", d.cfg.ChannelID),
	)
	if _, err := s.ChannelMessageSend(d.cfg.ChannelID, "✅ Masar Assistant is online!"); err != nil {
		d.logger.Warn("startup announcement failed", zap.Error(err))
	}
}

func (d *Discord) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	text, addressed := d.routeText(s.State.User.ID, m)
	if !addressed {
		return
	}

	reply := d.assistant.HandleMessage(context.Background(), m.Author.ID, d.cfg.OwnerID, text)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		d.logger.Error("discord reply failed", zap.Error(err))
	}
}

// routeText decides whether the message is for the bot and strips the
// addressing. `!` commands and mentions are always routed, anywhere; the
// dispatcher answers non-owners with the no-permission reply. Plain messages
// on the configured channel are routed only when the owner sent them, so the
// bot does not answer bystander chatter it was never addressed by.
func (d *Discord) routeText(botID string, m *discordgo.MessageCreate) (string, bool) {
	content := strings.TrimSpace(m.Content)

	if strings.HasPrefix(content, "!") {
		return strings.TrimSpace(strings.TrimPrefix(content, "!")), true
	}

	for _, u := range m.Mentions {
		if u.ID == botID {
			mention := "<@" + u.ID + ">"
			nickMention := "<@!" + u.ID + ">"
			content = strings.ReplaceAll(content, mention, "")
			content = strings.ReplaceAll(content, nickMention, "")
			return strings.TrimSpace(content), true
		}
	}

	if m.ChannelID == d.cfg.ChannelID && m.Author.ID == d.cfg.OwnerID {
		return content, true
	}
	return "", false
}

// ── Daily reminders (notifier.Sender) ──

func (d *Discord) SendMorning(_ context.Context, upcoming []dto.ClassBlock) error {
	embed := &discordgo.MessageEmbed{
		Title: "🌅 Good Morning!",
		Color: colorMorning,
	}
	if len(upcoming) == 0 {
		embed.Description = "📅 No classes scheduled for today!"
	} else {
		embed.Description = "Here are your upcoming classes:"
		for _, c := range upcoming {
			embed.Fields = append(embed.Fields, classField(c))
		}
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Have a great day! 🎓"}
	}

	_, err := d.session.ChannelMessageSendEmbed(d.cfg.ChannelID, embed)
	return err
}

func (d *Discord) SendEvening(_ context.Context, tomorrow []dto.ClassBlock, completed []dto.CompletedClass) error {
	embed := &discordgo.MessageEmbed{
		Title: "🌙 End of Day Summary",
		Color: colorEvening,
	}

	if len(completed) > 0 {
		var b strings.Builder
		for _, c := range completed {
			fmt.Fprintf(&b, "✅ %s (%s)\n", c.ClassName, c.ClassCode)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📚 Classes completed today",
			Value: b.String(),
		})
	}

	if len(tomorrow) == 0 {
		embed.Description = "📅 No classes scheduled for tomorrow!"
	} else {
		embed.Description = "📅 Tomorrow's classes:"
		for _, c := range tomorrow {
			embed.Fields = append(embed.Fields, classField(c))
		}
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "Sweet dreams! 😴"}

	_, err := d.session.ChannelMessageSendEmbed(d.cfg.ChannelID, embed)
	return err
}

func classField(c dto.ClassBlock) *discordgo.MessageEmbedField {
	var b strings.Builder
	fmt.Fprintf(&b, "⏰ %s - %s\n", timetable.ClockAM(c.StartTime), timetable.ClockAM(c.EndTime))
	fmt.Fprintf(&b, "📍 %s", c.Location)
	if c.BringItems != "" {
		fmt.Fprintf(&b, "\n📝 Bring: %s", c.BringItems)
	}
	return &discordgo.MessageEmbedField{
		Name:  fmt.Sprintf("📚 %s (%s)", c.ClassName, c.ClassCode),
		Value: b.String(),
	}
}
