package ports

import (
	"context"
	"time"
)

// DTO сообщения: одна единица «транскрипция + перевод»
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderRole     string    `json:"sender_role"`
	OriginalText   string    `json:"original_text"`
	OriginalLang   string    `json:"original_lang"`
	TranslatedText string    `json:"translated_text"`
	TranslatedLang string    `json:"translated_lang"`
	AudioURL       *string   `json:"audio_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type MessageRepo interface {
	Create(ctx context.Context, m Message) (Message, error)

	// created_at по возрастанию
	ListByConversation(ctx context.Context, conversationID string) ([]Message, error)

	// поиск по original_text + translated_text во всех беседах, свежие первыми
	Search(ctx context.Context, query string) ([]Message, error)
}
