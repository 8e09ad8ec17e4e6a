package domain

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Event titles that trigger billing. Other titles are kept but have no side effects.
const (
	TopUpTitle     = "balance_top_up"
	ModelCallTitle = "model_call"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// Event is a user action that may move money: a top-up or a paid model call
type Event struct {
	ID          uint
	Title       string
	Description string
	Image       string          // Model input, model calls only
	Result      string          // Model output once the call succeeded
	Amount      decimal.Decimal // Top-up amount, or the charge after a model call
	Creator     *User
	ReportedAt  time.Time
}

// NewEvent validates title and description lengths and stamps the event
func NewEvent(id uint, title, description string, creator *User, reportedAt time.Time) (*Event, error) {
	if n := utf8.RuneCountInString(title); n < 1 || n > maxTitleLength {
		return nil, newValidationError("title", "title must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, newValidationError("description", "description must not exceed 500 characters")
	}
	if creator == nil {
		return nil, newValidationError("creator", "event must have a creator")
	}
	return &Event{
		ID:          id,
		Title:       title,
		Description: description,
		Creator:     creator,
		ReportedAt:  reportedAt,
	}, nil
}

// NewTopUpEvent builds a balance top-up event for amount
func NewTopUpEvent(id uint, creator *User, amount decimal.Decimal, reportedAt time.Time) (*Event, error) {
	e, err := NewEvent(id, TopUpTitle, "balance top-up", creator, reportedAt)
	if err != nil {
		return nil, err
	}
	e.Amount = amount
	return e, nil
}

// NewModelCallEvent builds a paid model call on image
func NewModelCallEvent(id uint, creator *User, image string, reportedAt time.Time) (*Event, error) {
	e, err := NewEvent(id, ModelCallTitle, "model call", creator, reportedAt)
	if err != nil {
		return nil, err
	}
	e.Image = image
	return e, nil
}
