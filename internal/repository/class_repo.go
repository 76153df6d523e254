package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/juriqh/masar-notes-buddy/internal/model"
)

// ClassRepository is the data-access interface for the classes table.
type ClassRepository interface {
	// ListByOwner returns all active classes for the owner, ordered by day
	// then start time.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Class, error)
	// GetByOwnerAndCode returns one class row for (owner, class_code).
	// gorm.ErrRecordNotFound when no row matches.
	GetByOwnerAndCode(ctx context.Context, ownerID, classCode string) (*model.Class, error)
	// ExistsByOwnerCodeDay is the de-duplication probe: does a row already
	// exist for (owner, class_code, weekday)?
	ExistsByOwnerCodeDay(ctx context.Context, ownerID, classCode, day string) (bool, error)
	// BatchInsert stages one bulk insert for the whole set with an
	// on-conflict-do-nothing directive; the batch succeeds or fails as a whole.
	BatchInsert(ctx context.Context, classes []model.Class) error
	// UpdateBringItems amends the bring_items note on (owner, class_code).
	// Returns the number of rows touched; zero means the class was not found.
	UpdateBringItems(ctx context.Context, ownerID, classCode, items string) (int64, error)
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo builds a ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active", ownerID).
		Order("days_of_week ASC, start_time ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) GetByOwnerAndCode(ctx context.Context, ownerID, classCode string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND class_code = ?", ownerID, classCode).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) ExistsByOwnerCodeDay(ctx context.Context, ownerID, classCode, day string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("user_id = ? AND class_code = ? AND days_of_week = ?", ownerID, classCode, day).
		Count(&count).Error
	return count > 0, err
}

func (r *classRepo) BatchInsert(ctx context.Context, classes []model.Class) error {
	if len(classes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&classes).Error
}

func (r *classRepo) UpdateBringItems(ctx context.Context, ownerID, classCode, items string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Class{}).
		Where("user_id = ? AND class_code = ?", ownerID, classCode).
		Update("bring_items", items)
	return res.RowsAffected, res.Error
}
