package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/juriqh/masar-notes-buddy/internal/model"
)

// ReminderRepository is the data-access interface for the reminders table.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Reminder, error)
}

type reminderRepo struct {
	db *gorm.DB
}

// NewReminderRepo builds a ReminderRepository.
func NewReminderRepo(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, reminder *model.Reminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("remind_date ASC").
		Find(&reminders).Error
	return reminders, err
}
