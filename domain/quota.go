package domain

import "time"

// UserQuota is the per-user remaining-credit record. RemainingCredits never
// goes negative; it is only mutated via conditional decrement or explicit set.
type UserQuota struct {
	UserID           string    `gorm:"primaryKey" json:"user_id"`
	RemainingCredits int       `gorm:"column:remaining_credits;not null" json:"remaining_credits"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastUpdatedAt    time.Time `gorm:"column:last_updated_at;autoUpdateTime" json:"last_updated_at"`
}
