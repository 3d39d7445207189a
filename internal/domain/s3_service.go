package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/ports"
)

type s3Service struct {
	client  ports.S3Client
	timeout time.Duration
}

func NewS3Service(client ports.S3Client, timeout time.Duration) ports.S3Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &s3Service{client: client, timeout: timeout}
}

// ObjectKey — путь в бакете: conversation/role/uuid.ext.
// Свежий uuid на каждую попытку, поэтому ретрай никогда не перетирает blob.
func (s *s3Service) ObjectKey(conversationID, senderRole, filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" {
		ext = ".webm"
	}
	if senderRole == "" {
		senderRole = "patient"
	}
	return fmt.Sprintf("%s/%s/%s%s", conversationID, senderRole, uuid.NewString(), ext)
}

func (s *s3Service) SaveAudio(
	ctx context.Context,
	conversationID, senderRole string,
	audio []byte,
	filename, contentType string,
) (string, string, error) {

	key := s.ObjectKey(conversationID, senderRole, filename)
	if contentType == "" {
		contentType = "audio/webm"
	}

	ctxS3, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url, err := s.client.PutObject(ctxS3, key, bytes.NewReader(audio), int64(len(audio)), contentType)
	if err != nil {
		return "", "", storageErr("upload audio", err)
	}
	return url, key, nil
}

func (s *s3Service) GetAudio(ctx context.Context, key string) ([]byte, error) {
	ctxS3, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.GetObject(ctxS3, key)
	if err != nil {
		return nil, storageErr("get audio", err)
	}
	return data, nil
}

func (s *s3Service) DeleteConversationAudio(ctx context.Context, conversationID string) error {
	ctxS3, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.RemoveByPrefix(ctxS3, conversationID+"/"); err != nil {
		return storageErr("delete conversation audio", err)
	}
	return nil
}

// storageErr: зависший стораж — это 504, а не вечный запрос
func storageErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.UpstreamTimeout(op+" timed out", err)
	}
	return err
}
