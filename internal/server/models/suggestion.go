package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
)

type SuggestionStatus string

const (
	StatusPending  SuggestionStatus = "pending"
	StatusInReview SuggestionStatus = "in_review"
	StatusAccepted SuggestionStatus = "accepted"
	StatusRejected SuggestionStatus = "rejected"
)

// transitions lists the moves a moderator may make. Accepted and rejected
// are terminal.
var transitions = map[SuggestionStatus][]SuggestionStatus{
	StatusPending:  {StatusInReview, StatusAccepted, StatusRejected},
	StatusInReview: {StatusAccepted, StatusRejected},
}

// ParseSuggestionStatus accepts the canonical names, case-insensitively,
// with "-" or " " in place of "_".
func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch st := SuggestionStatus(norm); st {
	case StatusPending, StatusInReview, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown suggestion status %q", common.ErrorValidation, s)
}

func (s SuggestionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether a moderator may move a suggestion from s
// to next.
func (s SuggestionStatus) CanTransitionTo(next SuggestionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Suggestion is an entry in the feedback mailbox.
type Suggestion struct {
	ID        string
	Text      string
	UserID    string
	UserName  string
	Status    SuggestionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Suggestion) Clone() *Suggestion {
	c := *s
	return &c
}
