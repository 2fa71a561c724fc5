package lead

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository handles submission history access
type Repository struct {
	db *gorm.DB
}

// NewRepository creates submission repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates the tables this package owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Submission{})
}

// Create inserts a submission
func (r *Repository) Create(ctx context.Context, s *Submission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// List returns submissions, newest first, with optional result filter
func (r *Repository) List(ctx context.Context, result *SubmissionResult, limit, offset int) ([]Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&Submission{})
	if result != nil {
		query = query.Where("result = ?", *result)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []Submission
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&submissions).Error
	return submissions, total, err
}

// CountByResult returns submission counts by result
func (r *Repository) CountByResult(ctx context.Context) (map[SubmissionResult]int64, error) {
	var rows []struct {
		Result SubmissionResult
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&Submission{}).
		Select("result, COUNT(*) AS count").
		Group("result").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[SubmissionResult]int64, len(rows))
	for _, row := range rows {
		counts[row.Result] = row.Count
	}
	return counts, nil
}

// DeleteOlderThan removes submissions created before cutoff and returns how many.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Submission{})
	return res.RowsAffected, res.Error
}
