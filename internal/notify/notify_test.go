package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

type recordingBot struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
	err  error
}

func (b *recordingBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, b.err
}

func (b *recordingBot) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

func TestStatusMessage(t *testing.T) {
	order := &models.Order{
		ID:           12,
		Price:        decimal.NewFromInt(1500),
		Status:       models.OrderStatusCompleted,
		ShippingInfo: &models.ShippingInfo{Email: "cody@email.com"},
	}

	msg := StatusMessage(order)
	assert.Contains(t, msg, "Order #12 is complete")
	assert.Contains(t, msg, "Total: $1500.00")
	assert.Contains(t, msg, "cody@email.com")

	order.ShippingInfo = nil
	assert.NotContains(t, StatusMessage(order), "Customer")
}

func TestTelegramDeliversQueuedMessages(t *testing.T) {
	bot := &recordingBot{err: errors.New("telegram down")}
	notifier := newTelegram(bot, 42)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx)

	notifier.OrderStatusChanged(ctx, &models.Order{ID: 1, Status: models.OrderStatusProcessing})
	notifier.OrderStatusChanged(ctx, &models.Order{ID: 2, Status: models.OrderStatusCancelled})

	require.Eventually(t, func() bool { return bot.count() == 2 }, time.Second, 10*time.Millisecond)

	bot.mu.Lock()
	defer bot.mu.Unlock()
	assert.Equal(t, int64(42), bot.sent[0].ChatID)
	assert.Contains(t, bot.sent[1].Text, "Order #2 was cancelled")
}

func TestTelegramDropsWhenQueueFull(t *testing.T) {
	notifier := newTelegram(&recordingBot{}, 1)

	for i := 0; i < queueSize+5; i++ {
		notifier.OrderStatusChanged(context.Background(), &models.Order{ID: i})
	}
	assert.Len(t, notifier.queue, queueSize)
}
