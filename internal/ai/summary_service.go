package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	tiktoken "github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/error_notificator"
	"github.com/Vovarama1992/medi_translate/internal/ports"
)

// лимит на транскрипт в токенах, чтобы длинные беседы влезали в контекст модели
const summaryTokenBudget = 6000

const summaryPrompt = `You are a medical scribe. Below is the transcript of a conversation between a patient and a clinician (each line shows the original utterance and its translation).

Extract a structured summary. Respond with ONLY a JSON object, no prose, no code fences:
{"chief_complaint": "<one sentence>", "medications": ["<name and dose if mentioned>"], "follow_up": ["<action>"]}

Use empty string / empty arrays when nothing was mentioned.

Transcript:
`

type SummaryService struct {
	client        CompletionClient
	conversations ports.ConversationRepo
	messages      ports.MessageRepo
	notifier      error_notificator.Notificator
	timeout       time.Duration
	countTokens   func(string) int
}

func NewSummaryService(
	client CompletionClient,
	conversations ports.ConversationRepo,
	messages ports.MessageRepo,
	notifier error_notificator.Notificator,
	timeout time.Duration,
) *SummaryService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &SummaryService{
		client:        client,
		conversations: conversations,
		messages:      messages,
		notifier:      notifier,
		timeout:       timeout,
		countTokens:   newTokenCounter(),
	}
}

func (s *SummaryService) Summarize(ctx context.Context, conversationID string) (ports.Summary, error) {
	// беседа должна существовать; пустая — это не ошибка
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		return ports.Summary{}, err
	}

	msgs, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return ports.Summary{}, err
	}
	if len(msgs) == 0 {
		return ports.Summary{Empty: true, Medications: []string{}, FollowUp: []string{}}, nil
	}

	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("[%s] %s (%s) -> %s (%s)",
			m.SenderRole, m.OriginalText, m.OriginalLang, m.TranslatedText, m.TranslatedLang))
	}
	lines = trimToBudget(lines, summaryTokenBudget, s.countTokens)

	start := time.Now()
	ctxLLM, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.GetCompletion(ctxLLM, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: summaryPrompt + strings.Join(lines, "\n")},
	}, TranslationModel)
	log.Printf("[summary][%.1fs] conversation=%s lines=%d err=%v",
		time.Since(start).Seconds(), conversationID, len(lines), err)

	if err != nil {
		s.notifier.Notify(ctx, err, "Ошибка генерации summary: conversation="+conversationID)
		return ports.Summary{}, err
	}

	summary, err := parseSummary(raw)
	if err != nil {
		s.notifier.Notify(ctx, err, "Модель вернула некорректный summary: conversation="+conversationID)
		return ports.Summary{}, apperr.UpstreamUnavailable("malformed summary from model", err)
	}
	return summary, nil
}

// trimToBudget режет транскрипт сзади наперёд: свежие реплики важнее,
// хронологический порядок оставшихся сохраняется.
func trimToBudget(lines []string, limit int, count func(string) int) []string {
	total := 0
	start := 0
	for i := len(lines) - 1; i >= 0; i-- {
		total += count(lines[i])
		if total > limit {
			start = i + 1
			break
		}
	}
	if start < len(lines) {
		return lines[start:]
	}

	// даже одна свежая реплика не влезла — отдаём её хвост, а не пустой транскрипт
	last := lines[len(lines)-1]
	if max := limit * 4; len(last) > max { // ~4 байта на токен
		last = last[len(last)-max:]
	}
	return []string{last}
}

func parseSummary(raw string) (ports.Summary, error) {
	clean := strings.TrimSpace(raw)

	// модели любят оборачивать JSON в ```-заборы, несмотря на промпт
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var s ports.Summary
	if err := json.Unmarshal([]byte(clean), &s); err != nil {
		return ports.Summary{}, err
	}
	if s.Medications == nil {
		s.Medications = []string{}
	}
	if s.FollowUp == nil {
		s.FollowUp = []string{}
	}
	return s, nil
}

func newTokenCounter() func(string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Printf("[summary] tokenizer init fail: %v", err)
		// грубая оценка ~4 символа на токен
		return func(s string) int { return len(s)/4 + 1 }
	}
	return func(s string) int { return len(enc.Encode(s, nil, nil)) }
}
