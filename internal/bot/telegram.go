package bot

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pfrederiksen/courtgrid/internal/logger"
)

// telegramReplier sends replies through the Telegram Bot API
type telegramReplier struct {
	b *tgbot.Bot
}

func (t *telegramReplier) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := t.b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func (t *telegramReplier) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	_, err := t.b.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: photoURL},
		Caption: caption,
	})
	return err
}

// Run long-polls Telegram for updates and dispatches text messages until ctx is done
func Run(ctx context.Context, token string, d *Dispatcher, log *logger.Logger) error {
	if token == "" {
		return fmt.Errorf("telegram token is required")
	}

	b, err := tgbot.New(token, tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.Text == "" {
			return
		}
		// Errors are logged by the dispatcher
		_, _ = d.Handle(ctx, &telegramReplier{b: b}, update.Message.Chat.ID, update.Message.Text)
	}))
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}

	log.Info("Telegram bot polling", nil)
	b.Start(ctx)
	log.Info("Telegram bot stopped", nil)
	return nil
}
