package model

import "time"

// Reminder is a one-off user reminder, stored in table reminders.
// Insert only: no cancellation, snooze or completion state is modelled.
type Reminder struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	RemindDate  time.Time `gorm:"not null"                                       json:"remind_date"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName maps to the reminders table.
func (Reminder) TableName() string { return "reminders" }
