package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient — то, что умеет наш Groq-клиент; интерфейс нужен,
// чтобы сервисы тестировались без живого апстрима.
type CompletionClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error)
}

type Translator interface {
	// Translate переводит text с sourceLang на targetLang.
	// При sourceLang == targetLang возвращает text как есть, без похода в модель.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
