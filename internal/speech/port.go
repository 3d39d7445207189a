package speech

import "context"

type Client interface {
	// голос → текст; вторым значением — язык, который определил провайдер
	Transcribe(ctx context.Context, audio []byte, filename, language string) (text, detectedLang string, err error)
}
