package ports

import "context"

type ConversationService interface {
	Create(ctx context.Context, sourceLang, targetLang string) (Conversation, error)
	Get(ctx context.Context, id string) (Conversation, error)
	List(ctx context.Context) ([]Conversation, error)
	UpdateLanguages(ctx context.Context, id string, sourceLang, targetLang *string) (Conversation, error)

	// удаляет беседу, её сообщения и аудио-объекты в бакете
	Delete(ctx context.Context, id string) error

	Messages(ctx context.Context, conversationID string) ([]Message, error)

	// текстовая ветка конвейера: перевод без аудио
	AddTextMessage(ctx context.Context, conversationID, senderRole, text string) (Message, error)

	Search(ctx context.Context, query string) ([]Message, error)
}
