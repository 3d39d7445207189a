package error_notificator

import "context"

type Notificator interface {
	// Notify — отправляет сообщение об ошибке админу.
	// Канал уведомлений не должен ронять основной поток, поэтому без error.
	Notify(ctx context.Context, err error, details string)
}
