package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/error_notificator"
)

type TranslateService struct {
	client   CompletionClient
	notifier error_notificator.Notificator
	timeout  time.Duration
}

func NewTranslateService(client CompletionClient, notifier error_notificator.Notificator, timeout time.Duration) *TranslateService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TranslateService{
		client:   client,
		notifier: notifier,
		timeout:  timeout,
	}
}

func (s *TranslateService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	src, ok := NormalizeLang(sourceLang)
	if !ok {
		return "", apperr.Validation("unsupported source language: " + sourceLang)
	}
	tgt, ok := NormalizeLang(targetLang)
	if !ok {
		return "", apperr.Validation("unsupported target language: " + targetLang)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperr.Validation("text is empty")
	}

	// одинаковая пара — отдаём как есть, модель не дергаем
	// (иначе llama начинает перефразировать)
	if src == tgt {
		return text, nil
	}

	prompt := fmt.Sprintf(
		"Translate from %s to %s. Return ONLY the translation:\n\n%s",
		LanguageName(src), LanguageName(tgt), text,
	)

	start := time.Now()
	ctxLLM, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.client.GetCompletion(ctxLLM, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, TranslationModel)
	log.Printf("[translate][%.1fs] %s->%s done err=%v", time.Since(start).Seconds(), src, tgt, err)

	if err != nil {
		s.notifier.Notify(ctx, err, fmt.Sprintf("Ошибка перевода %s->%s", src, tgt))
		return "", err
	}

	return strings.TrimSpace(translated), nil
}
