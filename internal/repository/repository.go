package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	Class    ClassRepository
	Reminder ReminderRepository
	Note     NoteRepository
}

// NewRepository builds the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Class:    NewClassRepo(db),
		Reminder: NewReminderRepo(db),
		Note:     NewNoteRepo(db),
	}
}
