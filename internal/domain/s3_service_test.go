package domain

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
)

// клиент, имитирующий повисший стораж: отвечает только по отмене контекста
type hangingS3Client struct{}

func (hangingS3Client) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingS3Client) GetObject(ctx context.Context, key string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingS3Client) RemoveByPrefix(ctx context.Context, prefix string) error {
	<-ctx.Done()
	return ctx.Err()
}

type deadlineCaptureClient struct {
	hadDeadline bool
}

func (c *deadlineCaptureClient) PutObject(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, c.hadDeadline = ctx.Deadline()
	return "https://cdn/" + key, nil
}

func (c *deadlineCaptureClient) GetObject(ctx context.Context, key string) ([]byte, error) {
	_, c.hadDeadline = ctx.Deadline()
	return []byte("audio"), nil
}

func (c *deadlineCaptureClient) RemoveByPrefix(ctx context.Context, prefix string) error {
	_, c.hadDeadline = ctx.Deadline()
	return nil
}

func TestSaveAudioTimesOutOnHungStorage(t *testing.T) {
	svc := NewS3Service(hangingS3Client{}, 20*time.Millisecond)

	start := time.Now()
	_, _, err := svc.SaveAudio(context.Background(), "c1", "patient", []byte("a"), "rec.webm", "audio/webm")

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "запрос не должен висеть дольше таймаута")
	assert.Equal(t, http.StatusGatewayTimeout, apperr.HTTPStatus(err))
}

func TestGetAudioTimesOutOnHungStorage(t *testing.T) {
	svc := NewS3Service(hangingS3Client{}, 20*time.Millisecond)

	_, err := svc.GetAudio(context.Background(), "c1/patient/key.webm")

	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, apperr.HTTPStatus(err))
}

func TestDeleteConversationAudioTimesOutOnHungStorage(t *testing.T) {
	svc := NewS3Service(hangingS3Client{}, 20*time.Millisecond)

	err := svc.DeleteConversationAudio(context.Background(), "c1")

	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, apperr.HTTPStatus(err))
}

func TestStorageCallsCarryDeadline(t *testing.T) {
	client := &deadlineCaptureClient{}
	svc := NewS3Service(client, 30*time.Second)

	_, _, err := svc.SaveAudio(context.Background(), "c1", "doctor", []byte("a"), "rec.mp3", "audio/mpeg")
	require.NoError(t, err)
	assert.True(t, client.hadDeadline, "PutObject должен получать контекст с дедлайном")

	client.hadDeadline = false
	_, err = svc.GetAudio(context.Background(), "c1/doctor/key.mp3")
	require.NoError(t, err)
	assert.True(t, client.hadDeadline)

	client.hadDeadline = false
	require.NoError(t, svc.DeleteConversationAudio(context.Background(), "c1"))
	assert.True(t, client.hadDeadline)
}
