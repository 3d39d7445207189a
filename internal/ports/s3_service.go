package ports

import "context"

type S3Service interface {
	ObjectKey(conversationID, senderRole, filename string) string
	SaveAudio(ctx context.Context, conversationID, senderRole string, audio []byte, filename, contentType string) (publicURL, key string, err error)
	GetAudio(ctx context.Context, key string) ([]byte, error)
	DeleteConversationAudio(ctx context.Context, conversationID string) error
}
