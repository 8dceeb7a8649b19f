package domain

import "time"

// MissionType - платформа миссии
type MissionType string

const (
	MissionTypeTelegram MissionType = "telegram"
	MissionTypeTwitter  MissionType = "twitter"
	MissionTypeYoutube  MissionType = "youtube"
	MissionTypeOther    MissionType = "other"
)

// Mission is a social-media task template.
type Mission struct {
	ID          int64       `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	MissionType MissionType `db:"mission_type" json:"mission_type"`
	URL         string      `db:"url" json:"url"`
	Reward      int64       `db:"reward" json:"reward"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	SortOrder   int         `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// MissionCompletion records one completion per (account, mission).
type MissionCompletion struct {
	ID          int64     `db:"id" json:"id"`
	AccountID   int64     `db:"account_id" json:"account_id"`
	MissionID   int64     `db:"mission_id" json:"mission_id"`
	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// MissionWithStatus - миссия с отметкой выполнения (для API ответов)
type MissionWithStatus struct {
	Mission
	Completed bool `json:"completed"`
}
