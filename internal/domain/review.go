package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxReviewCommentLength = 2000

type Review struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID  uint64    `json:"product_id" gorm:"not null;index"`
	UserID     uint64    `json:"user_id" gorm:"not null;index"`
	AuthorName string    `json:"author_name,omitempty" gorm:"->;-:migration"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	IsApproved bool      `json:"is_approved" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Review) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	if r.Rating < 1 || r.Rating > 5 {
		return NewValidationError("rating", "must be between 1 and 5")
	}
	if utf8.RuneCountInString(r.Comment) > MaxReviewCommentLength {
		return NewValidationError("comment", "is too long")
	}
	return nil
}
