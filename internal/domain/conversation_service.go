package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vovarama1992/medi_translate/internal/ai"
	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/error_notificator"
	"github.com/Vovarama1992/medi_translate/internal/ports"
)

type conversationService struct {
	conversations ports.ConversationRepo
	messages      ports.MessageRepo
	s3            ports.S3Service
	translator    ai.Translator
	notifier      error_notificator.Notificator
}

func NewConversationService(
	conversations ports.ConversationRepo,
	messages ports.MessageRepo,
	s3 ports.S3Service,
	translator ai.Translator,
	notifier error_notificator.Notificator,
) ports.ConversationService {
	return &conversationService{
		conversations: conversations,
		messages:      messages,
		s3:            s3,
		translator:    translator,
		notifier:      notifier,
	}
}

func (s *conversationService) Create(ctx context.Context, sourceLang, targetLang string) (ports.Conversation, error) {
	src, ok := ai.NormalizeLang(sourceLang)
	if !ok {
		return ports.Conversation{}, apperr.Validation("unsupported source language: " + sourceLang)
	}
	tgt, ok := ai.NormalizeLang(targetLang)
	if !ok {
		return ports.Conversation{}, apperr.Validation("unsupported target language: " + targetLang)
	}

	return s.conversations.Create(ctx, uuid.NewString(), src, tgt)
}

func (s *conversationService) Get(ctx context.Context, id string) (ports.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

func (s *conversationService) List(ctx context.Context) ([]ports.Conversation, error) {
	return s.conversations.List(ctx)
}

func (s *conversationService) UpdateLanguages(ctx context.Context, id string, sourceLang, targetLang *string) (ports.Conversation, error) {
	if sourceLang == nil && targetLang == nil {
		return ports.Conversation{}, apperr.Validation("nothing to update")
	}

	if sourceLang != nil {
		src, ok := ai.NormalizeLang(*sourceLang)
		if !ok {
			return ports.Conversation{}, apperr.Validation("unsupported source language: " + *sourceLang)
		}
		sourceLang = &src
	}
	if targetLang != nil {
		tgt, ok := ai.NormalizeLang(*targetLang)
		if !ok {
			return ports.Conversation{}, apperr.Validation("unsupported target language: " + *targetLang)
		}
		targetLang = &tgt
	}

	// прежние сообщения не перепереводим: пара влияет только на новые
	return s.conversations.UpdateLanguages(ctx, id, sourceLang, targetLang)
}

func (s *conversationService) Delete(ctx context.Context, id string) error {
	if _, err := s.conversations.Get(ctx, id); err != nil {
		return err
	}

	// сначала бакет: если стор недоступен, беседа остаётся и запрос можно повторить
	if err := s.s3.DeleteConversationAudio(ctx, id); err != nil {
		s.notifier.Notify(ctx, err, "Не удалось удалить аудио беседы "+id)
		return err
	}

	// строки messages уходят каскадом по FK
	return s.conversations.Delete(ctx, id)
}

func (s *conversationService) Messages(ctx context.Context, conversationID string) ([]ports.Message, error) {
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(ctx, conversationID)
}

func (s *conversationService) AddTextMessage(ctx context.Context, conversationID, senderRole, text string) (ports.Message, error) {
	if strings.TrimSpace(text) == "" {
		return ports.Message{}, apperr.Validation("text is empty")
	}

	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return ports.Message{}, err
	}

	translated, err := s.translator.Translate(ctx, text, conv.SourceLang, conv.TargetLang)
	if err != nil {
		return ports.Message{}, err
	}

	msg, err := s.messages.Create(ctx, ports.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		SenderRole:     normalizeRole(senderRole),
		OriginalText:   text,
		OriginalLang:   conv.SourceLang,
		TranslatedText: translated,
		TranslatedLang: conv.TargetLang,
	})
	if err != nil {
		s.notifier.Notify(ctx, err, fmt.Sprintf("Ошибка записи сообщения: conversation=%s", conv.ID))
		return ports.Message{}, err
	}
	return msg, nil
}

func (s *conversationService) Search(ctx context.Context, query string) ([]ports.Message, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("query is empty")
	}
	return s.messages.Search(ctx, strings.TrimSpace(query))
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return "patient"
	}
	return role
}
