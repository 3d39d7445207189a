package ports

import "context"

// Полный аудио-конвейер: blob → STT → перевод → insert.
// Шаги строго последовательны, откатов нет (загруженный blob остаётся при
// падении поздних шагов).
type PipelineService interface {
	ProcessAudio(ctx context.Context, conversationID, senderRole string, audio []byte, filename, contentType string) (Message, error)
}
