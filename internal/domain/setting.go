package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentSetting holds the recipient details shown to buyers for one payment
// method (bank account, Wise email, PromptPay id and so on).
type PaymentSetting struct {
	ID        uint64            `json:"-" gorm:"primaryKey;autoIncrement"`
	Method    PaymentMethod     `json:"method" gorm:"type:varchar(32);uniqueIndex;not null"`
	Enabled   bool              `json:"enabled" gorm:"not null"`
	Details   datatypes.JSONMap `json:"details"`
	UpdatedAt time.Time         `json:"updated_at"`
}
