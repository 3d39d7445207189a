package domain

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/medi_translate/internal/ai"
	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/error_notificator"
	"github.com/Vovarama1992/medi_translate/internal/ports"
	"github.com/Vovarama1992/medi_translate/internal/speech"
)

type pipelineService struct {
	conversations ports.ConversationRepo
	messages      ports.MessageRepo
	s3            ports.S3Service
	stt           *speech.Service
	translator    ai.Translator
	notifier      error_notificator.Notificator
}

func NewPipelineService(
	conversations ports.ConversationRepo,
	messages ports.MessageRepo,
	s3 ports.S3Service,
	stt *speech.Service,
	translator ai.Translator,
	notifier error_notificator.Notificator,
) ports.PipelineService {
	return &pipelineService{
		conversations: conversations,
		messages:      messages,
		s3:            s3,
		stt:           stt,
		translator:    translator,
		notifier:      notifier,
	}
}

// ProcessAudio — единственный многошаговый алгоритм в системе.
// Шаги строго последовательны, каждый зависит от предыдущего:
// беседа → blob → транскрипция → перевод → insert.
// При падении шагов 3-4 загруженный blob НЕ откатывается, ошибка уходит
// вызывающему; повтор идёт с новым ключом, дубликаты допустимы.
func (s *pipelineService) ProcessAudio(
	ctx context.Context,
	conversationID, senderRole string,
	audio []byte,
	filename, contentType string,
) (ports.Message, error) {

	start := time.Now()
	log.Printf("[pipeline] >>> START conversation=%s bytes=%d", conversationID, len(audio))

	// валидация до первого side effect-а
	if len(audio) == 0 {
		return ports.Message{}, apperr.Validation("audio is empty")
	}
	if len(audio) > speech.MaxAudioBytes {
		return ports.Message{}, apperr.Validation("audio exceeds 20 MiB")
	}

	// 1) языковая пара беседы
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return ports.Message{}, err
	}

	// 2) blob — до транскрипции, чтобы ссылка существовала раньше сообщения
	audioURL, key, err := s.s3.SaveAudio(ctx, conv.ID, senderRole, audio, filename, contentType)
	if err != nil {
		s.notifier.Notify(ctx, err, "Ошибка загрузки аудио: conversation="+conv.ID)
		return ports.Message{}, err
	}
	log.Printf("[pipeline][%.1fs] blob uploaded key=%s", time.Since(start).Seconds(), key)

	// 3) STT с подсказкой исходного языка беседы
	text, detected, err := s.stt.Transcribe(ctx, audio, filename, conv.SourceLang)
	if err != nil {
		s.notifier.Notify(ctx, err, "Ошибка транскрипции: conversation="+conv.ID)
		return ports.Message{}, err
	}
	log.Printf("[pipeline][%.1fs] transcribed lang=%s chars=%d", time.Since(start).Seconds(), detected, len(text))

	// 4) перевод в пару беседы (тождественная пара закорачивается внутри)
	translated, err := s.translator.Translate(ctx, text, conv.SourceLang, conv.TargetLang)
	if err != nil {
		s.notifier.Notify(ctx, err, "Ошибка перевода: conversation="+conv.ID)
		return ports.Message{}, err
	}

	// 5) сообщение пишется последним: либо полное, либо никакого
	msg, err := s.messages.Create(ctx, ports.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderRole:     normalizeRole(senderRole),
		OriginalText:   text,
		OriginalLang:   conv.SourceLang,
		TranslatedText: translated,
		TranslatedLang: conv.TargetLang,
		AudioURL:       &audioURL,
	})
	if err != nil {
		s.notifier.Notify(ctx, err, fmt.Sprintf("Ошибка записи сообщения: conversation=%s key=%s", conv.ID, key))
		return ports.Message{}, err
	}

	log.Printf("[pipeline][%.1fs] done message=%s", time.Since(start).Seconds(), msg.ID)
	return msg, nil
}
