package infra

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Vovarama1992/medi_translate/internal/ports"
)

type messageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) ports.MessageRepo {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m ports.Message) (ports.Message, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (
			id, conversation_id, sender_role,
			original_text, original_lang,
			translated_text, translated_lang,
			audio_url, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, m.ID, m.ConversationID, m.SenderRole,
		m.OriginalText, m.OriginalLang,
		m.TranslatedText, m.TranslatedLang,
		m.AudioURL, time.Now()).Scan(&m.CreatedAt)
	return m, err
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID string) ([]ports.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_role,
		       original_text, original_lang,
		       translated_text, translated_lang,
		       audio_url, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// % и _ в пользовательском запросе — это литералы, а не маски ILIKE
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

func (r *messageRepo) Search(ctx context.Context, query string) ([]ports.Message, error) {
	// contains-поиск по обоим текстовым полям, свежие первыми
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_role,
		       original_text, original_lang,
		       translated_text, translated_lang,
		       audio_url, created_at
		FROM messages
		WHERE original_text ILIKE '%' || $1 || '%' ESCAPE '\'
		   OR translated_text ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY created_at DESC
	`, escapeLike(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]ports.Message, error) {
	var out []ports.Message
	for rows.Next() {
		var m ports.Message
		if err := rows.Scan(
			&m.ID,
			&m.ConversationID,
			&m.SenderRole,
			&m.OriginalText,
			&m.OriginalLang,
			&m.TranslatedText,
			&m.TranslatedLang,
			&m.AudioURL,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
