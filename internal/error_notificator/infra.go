package error_notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Infra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewInfra — бот может быть nil (алерты не сконфигурированы),
// тогда уведомления уходят только в лог.
func NewInfra(bot *tgbotapi.BotAPI, chatID int64) *Infra {
	return &Infra{bot: bot, chatID: chatID}
}

func (i *Infra) Notify(ctx context.Context, err error, details string) {
	log.Printf("[error_notificator] %s: %v", details, err)

	if i.bot == nil || i.chatID == 0 {
		return
	}

	text := fmt.Sprintf("❗ MediTranslate\n\nОшибка: %v\n\nДетали: %s", err, details)

	msg := tgbotapi.NewMessage(i.chatID, text)
	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
	}
}
