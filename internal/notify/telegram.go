package notify

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"storefront/internal/models"
)

const queueSize = 64

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts status changes to one admin chat from a background worker.
type Telegram struct {
	bot    sender
	chatID int64
	queue  chan string
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Notifier authorized as %s", bot.Self.UserName)
	return newTelegram(bot, chatID), nil
}

func newTelegram(bot sender, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan string, queueSize),
	}
}

// OrderStatusChanged queues the message without blocking; a full queue drops it.
func (t *Telegram) OrderStatusChanged(_ context.Context, order *models.Order) {
	select {
	case t.queue <- StatusMessage(order):
	default:
		log.Printf("Notification queue full, dropping status of order %d", order.ID)
	}
}

// Run delivers queued messages until ctx is done.
func (t *Telegram) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-t.queue:
			msg := tgbotapi.NewMessage(t.chatID, text)
			if _, err := t.bot.Send(msg); err != nil {
				log.Printf("Error sending notification: %v", err)
			}
		}
	}
}
