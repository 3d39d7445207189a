package speech

import (
	"context"
	"strings"
	"time"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

// аудио больше этого не принимаем — whisper всё равно откажет
const MaxAudioBytes = 20 << 20

type Service struct {
	stt     Client
	timeout time.Duration
}

func NewService(stt Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		stt:     stt,
		timeout: timeout,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, string, error) {
	if len(audio) == 0 {
		return "", "", apperr.Validation("audio is empty")
	}
	if len(audio) > MaxAudioBytes {
		return "", "", apperr.Validation("audio exceeds 20 MiB")
	}

	ctxSTT, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, detected, err := s.stt.Transcribe(ctxSTT, audio, filename, language)
	if err != nil {
		return "", "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", apperr.UpstreamRejected("provider returned empty transcript", nil)
	}
	return text, detected, nil
}
