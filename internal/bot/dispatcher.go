package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/courtgrid/internal/logger"
	"github.com/pfrederiksen/courtgrid/internal/metrics"
)

// Dispatcher routes prefixed messages to commands
type Dispatcher struct {
	prefix   string
	commands []Command
	log      *logger.Logger
}

// NewDispatcher creates a Dispatcher for the given prefix and command table
func NewDispatcher(prefix string, commands []Command, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		prefix:   prefix,
		commands: commands,
		log:      log,
	}
}

// Handle answers text if it starts with the prefix. It reports whether the message
// was addressed to the bot.
func (d *Dispatcher) Handle(ctx context.Context, r Replier, chatID int64, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, d.prefix) {
		return false, nil
	}
	body := stripMention(strings.TrimSpace(text[len(d.prefix):]))

	for _, cmd := range d.commands {
		if !strings.HasPrefix(body, cmd.Name()) {
			continue
		}

		metrics.BotCommands.WithLabelValues(cmd.Name()).Inc()
		d.log.Info("Bot command", logger.Fields{"command": cmd.Name(), "chat_id": chatID})

		args := strings.TrimSpace(body[len(cmd.Name()):])
		if err := cmd.Reply(ctx, r, chatID, args); err != nil {
			d.log.Error("Bot reply failed", logger.Fields{"command": cmd.Name(), "chat_id": chatID}, err)
			return true, fmt.Errorf("replying to %s: %w", cmd.Name(), err)
		}
		return true, nil
	}

	metrics.BotCommands.WithLabelValues("help").Inc()
	if err := r.SendText(ctx, chatID, d.HelpText()); err != nil {
		return true, fmt.Errorf("sending help: %w", err)
	}
	return true, nil
}

// HelpText lists every command
func (d *Dispatcher) HelpText() string {
	lines := make([]string, 0, len(d.commands)+1)
	lines = append(lines, "Available commands:")
	for _, cmd := range d.commands {
		lines = append(lines, fmt.Sprintf("%s%s -- %s", d.prefix, cmd.Name(), cmd.Help()))
	}
	return strings.Join(lines, "\n")
}

// stripMention drops a "@botname" suffix from the command word, as Telegram adds
// in group chats ("thisweek@courtgrid_bot")
func stripMention(body string) string {
	word, rest, _ := strings.Cut(body, " ")
	if at := strings.Index(word, "@"); at > 0 {
		word = word[:at]
	}
	if rest == "" {
		return word
	}
	return word + " " + rest
}
