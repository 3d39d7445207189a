package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

type mockCompletion struct {
	calls   int
	reply   string
	err     error
	lastMsg string
	model   string
}

func (m *mockCompletion) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error) {
	m.calls++
	m.model = model
	if len(messages) > 0 {
		m.lastMsg = messages[len(messages)-1].Content
	}
	return m.reply, m.err
}

type stubNotifier struct {
	notified int
}

func (n *stubNotifier) Notify(ctx context.Context, err error, details string) {
	n.notified++
}

func TestTranslateIdentityShortCircuit(t *testing.T) {
	client := &mockCompletion{reply: "should not be used"}
	svc := NewTranslateService(client, &stubNotifier{}, time.Second)

	got, err := svc.Translate(context.Background(), "The patient has a fever", "en", "en")
	require.NoError(t, err)

	assert.Equal(t, "The patient has a fever", got)
	assert.Zero(t, client.calls, "identity pair must not reach the model")
}

func TestTranslateIdentityShortCircuitNormalizesCodes(t *testing.T) {
	client := &mockCompletion{}
	svc := NewTranslateService(client, &stubNotifier{}, time.Second)

	got, err := svc.Translate(context.Background(), "hola", "ES", "Spanish")
	require.NoError(t, err)

	assert.Equal(t, "hola", got)
	assert.Zero(t, client.calls)
}

func TestTranslateCallsModel(t *testing.T) {
	client := &mockCompletion{reply: "  El paciente tiene fiebre  "}
	svc := NewTranslateService(client, &stubNotifier{}, time.Second)

	got, err := svc.Translate(context.Background(), "The patient has a fever", "en", "es")
	require.NoError(t, err)

	assert.Equal(t, "El paciente tiene fiebre", got)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, TranslationModel, client.model)
	assert.Contains(t, client.lastMsg, "Translate from English to Spanish")
	assert.Contains(t, client.lastMsg, "The patient has a fever")
}

func TestTranslateValidation(t *testing.T) {
	client := &mockCompletion{}
	svc := NewTranslateService(client, &stubNotifier{}, time.Second)

	_, err := svc.Translate(context.Background(), "hello", "xx", "es")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Translate(context.Background(), "hello", "en", "yy")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Translate(context.Background(), "   ", "en", "es")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Zero(t, client.calls)
}

func TestTranslateUpstreamErrorSurfacesAndNotifies(t *testing.T) {
	upstream := apperr.UpstreamUnavailable("groq completion", errors.New("status code: 503"))
	client := &mockCompletion{err: upstream}
	notifier := &stubNotifier{}
	svc := NewTranslateService(client, notifier, time.Second)

	_, err := svc.Translate(context.Background(), "hello", "en", "es")

	assert.Equal(t, apperr.KindUpstreamUnavailable, apperr.KindOf(err))
	assert.Equal(t, 1, notifier.notified)
}
