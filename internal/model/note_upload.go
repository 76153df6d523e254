package model

import "time"

// NoteUpload is a note attached to a class occurrence, stored in table notes_uploads.
// Never mutated or deleted by the system.
type NoteUpload struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"type:uuid;not null"                             json:"user_id"`
	ClassID     string    `gorm:"type:uuid;not null"                             json:"class_id"`
	NoteContent string    `gorm:"type:text;not null"                             json:"note_content"`
	NoteType    string    `gorm:"type:varchar(20);not null;default:'text'"       json:"note_type"` // text | image | file
	UploadDate  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"upload_date"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Class *Class `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

// TableName maps to the notes_uploads table.
func (NoteUpload) TableName() string { return "notes_uploads" }
