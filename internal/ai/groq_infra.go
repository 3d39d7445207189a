package ai

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

const (
	// Groq говорит на wire-протоколе OpenAI, поэтому обычный клиент с
	// подменённым BaseURL
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	TranslationModel = "llama-3.3-70b-versatile"
	WhisperModel     = "whisper-large-v3"
)

type GroqClient struct {
	client *openai.Client
}

func NewGroqClient(apiKey, baseURL string) *GroqClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *GroqClient) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", classifyUpstreamError("groq completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.UpstreamUnavailable("groq completion: empty choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe гоняет аудио через whisper. verbose_json — ради поля language.
func (c *GroqClient) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    WhisperModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", "", classifyUpstreamError("groq transcription", err)
	}

	detected := resp.Language
	if detected == "" {
		detected = language
	}
	return resp.Text, detected, nil
}
