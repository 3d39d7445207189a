package ports

import (
	"context"
	"time"
)

// DTO беседы: пара языков мутабельна, остальное — нет
type Conversation struct {
	ID         string    `json:"id"`
	SourceLang string    `json:"source_lang"`
	TargetLang string    `json:"target_lang"`
	CreatedAt  time.Time `json:"created_at"`
}

// Репозиторий Postgres
type ConversationRepo interface {
	Create(ctx context.Context, id, sourceLang, targetLang string) (Conversation, error)
	Get(ctx context.Context, id string) (Conversation, error)
	List(ctx context.Context) ([]Conversation, error)

	// nil-поле означает «не трогать»
	UpdateLanguages(ctx context.Context, id string, sourceLang, targetLang *string) (Conversation, error)

	// строки messages уходят каскадом по FK
	Delete(ctx context.Context, id string) error
}
