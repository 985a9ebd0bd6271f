package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/courtgrid/internal/links"
)

// Replier delivers replies to one chat
type Replier interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error
}

// Command is one entry of the command table
type Command interface {
	// Name is the word that selects the command after the prefix
	Name() string
	// Help is a one-line description
	Help() string
	// Reply answers the command; args is the text after the command name
	Reply(ctx context.Context, r Replier, chatID int64, args string) error
}

type pingCommand struct{}

// NewPingCommand creates the liveness command
func NewPingCommand() Command {
	return pingCommand{}
}

func (pingCommand) Name() string { return "ping" }
func (pingCommand) Help() string { return "return pong" }

func (pingCommand) Reply(ctx context.Context, r Replier, chatID int64, args string) error {
	return r.SendText(ctx, chatID, "pong")
}

type weekCommand struct {
	name   string
	help   string
	offset int
	links  *links.Builder
	today  func() time.Time
}

// NewWeekCommand creates a command that replies with the grid image starting
// offsetDays after today
func NewWeekCommand(name, help string, offsetDays int, lb *links.Builder, today func() time.Time) Command {
	return &weekCommand{
		name:   name,
		help:   help,
		offset: offsetDays,
		links:  lb,
		today:  today,
	}
}

func (c *weekCommand) Name() string { return c.name }
func (c *weekCommand) Help() string { return c.help }

func (c *weekCommand) Reply(ctx context.Context, r Replier, chatID int64, args string) error {
	start := c.today().AddDate(0, 0, c.offset)
	caption := fmt.Sprintf("%s courts from %d/%d\n%s",
		c.links.Facility(), int(start.Month()), start.Day(), c.links.HTMLLink(start))
	return r.SendPhoto(ctx, chatID, c.links.ImageLink(start), caption)
}

// DefaultCommands returns the standard command table
func DefaultCommands(lb *links.Builder, today func() time.Time) []Command {
	return []Command{
		NewPingCommand(),
		NewWeekCommand("thisweek", "show this week's reservations", 0, lb, today),
		NewWeekCommand("nextweek", "show next week's reservations", 7, lb, today),
	}
}
