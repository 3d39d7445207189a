package infra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Vovarama1992/medi_translate/internal/apperr"
	"github.com/Vovarama1992/medi_translate/internal/ports"
)

type conversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) ports.ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, id, sourceLang, targetLang string) (ports.Conversation, error) {
	var c ports.Conversation
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO conversations (id, source_lang, target_lang, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, source_lang, target_lang, created_at
	`, id, sourceLang, targetLang, time.Now()).Scan(&c.ID, &c.SourceLang, &c.TargetLang, &c.CreatedAt)
	return c, err
}

func (r *conversationRepo) Get(ctx context.Context, id string) (ports.Conversation, error) {
	var c ports.Conversation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, source_lang, target_lang, created_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.SourceLang, &c.TargetLang, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ports.Conversation{}, apperr.NotFound("conversation not found: " + id)
	}
	return c, err
}

func (r *conversationRepo) List(ctx context.Context) ([]ports.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_lang, target_lang, created_at
		FROM conversations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.Conversation
	for rows.Next() {
		var c ports.Conversation
		if err := rows.Scan(&c.ID, &c.SourceLang, &c.TargetLang, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *conversationRepo) UpdateLanguages(ctx context.Context, id string, sourceLang, targetLang *string) (ports.Conversation, error) {
	// COALESCE: nil-поле — «оставить как есть»
	var c ports.Conversation
	err := r.db.QueryRowContext(ctx, `
		UPDATE conversations
		SET source_lang = COALESCE($2, source_lang),
		    target_lang = COALESCE($3, target_lang)
		WHERE id = $1
		RETURNING id, source_lang, target_lang, created_at
	`, id, sourceLang, targetLang).Scan(&c.ID, &c.SourceLang, &c.TargetLang, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ports.Conversation{}, apperr.NotFound("conversation not found: " + id)
	}
	return c, err
}

func (r *conversationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("conversation not found: " + id)
	}
	return nil
}
