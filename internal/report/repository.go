package report

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	CreateReport(ctx context.Context, r Report) error
	ListReports(ctx context.Context, workspaceID uuid.UUID) ([]Report, error)
	GetReport(ctx context.Context, workspaceID, id uuid.UUID) (Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateReport(ctx context.Context, rec Report) error {
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *reportRepository) ListReports(ctx context.Context, workspaceID uuid.UUID) ([]Report, error) {
	var reports []Report
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetReport(ctx context.Context, workspaceID, id uuid.UUID) (Report, error) {
	var report Report
	err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&report).Error
	return report, err
}
