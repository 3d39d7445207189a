package ports

import "context"

// Summary — производная структура, никогда не персистится.
// Empty=true — явный маркер «нечего суммировать», это не ошибка.
type Summary struct {
	Empty          bool     `json:"empty"`
	ChiefComplaint string   `json:"chief_complaint"`
	Medications    []string `json:"medications"`
	FollowUp       []string `json:"follow_up"`
}

type SummaryService interface {
	Summarize(ctx context.Context, conversationID string) (Summary, error)
}
