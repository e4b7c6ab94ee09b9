package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/md-sanowar-hossain/isp-task-management-system/internal/auth"
	"github.com/md-sanowar-hossain/isp-task-management-system/internal/registry"
)

var (
	ErrNoData             = errors.New("no data to export")
	ErrReportNotFound     = errors.New("report not found")
	ErrArchiveUnavailable = errors.New("report archive is not configured")
)

const exportFilename = "ISP_Task_System.xlsx"

type ReportService interface {
	// Export builds the workbook from the live registry, archives it when
	// object storage is configured, and returns the bytes for streaming.
	Export(ctx context.Context, p *auth.Principal) (string, []byte, error)
	ListReports(ctx context.Context, p *auth.Principal) ([]Report, error)
	Download(ctx context.Context, p *auth.Principal, id uuid.UUID) (Report, io.ReadCloser, error)
}

type reportService struct {
	tasks   registry.TaskService
	repo    ReportRepository
	storage ObjectStorage
}

func NewReportService(tasks registry.TaskService, repo ReportRepository, storage ObjectStorage) ReportService {
	return &reportService{
		tasks:   tasks,
		repo:    repo,
		storage: storage,
	}
}

func (s *reportService) Export(ctx context.Context, p *auth.Principal) (string, []byte, error) {
	tasks, err := s.tasks.List(ctx, p)
	if err != nil {
		return "", nil, err
	}
	if len(tasks) == 0 {
		return "", nil, ErrNoData
	}

	wb, err := BuildWorkbook(tasks, p.Username, time.Now())
	if err != nil {
		return "", nil, err
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}
	data := buf.Bytes()

	if s.storage != nil {
		if err := s.archive(ctx, p, data); err != nil {
			// The caller still gets their download; the archive copy is
			// best effort.
			log.Printf("failed to archive report: %v", err)
		}
	}

	return exportFilename, data, nil
}

func (s *reportService) archive(ctx context.Context, p *auth.Principal, data []byte) error {
	reportID := uuid.New()
	objectKey := fmt.Sprintf("reports/%s/%s.xlsx", p.WorkspaceID, reportID)

	checksum, size, err := s.storage.Save(ctx, objectKey, data)
	if err != nil {
		return err
	}

	return s.repo.CreateReport(ctx, Report{
		ID:          reportID,
		WorkspaceID: p.WorkspaceID,
		ObjectKey:   objectKey,
		Filename:    exportFilename,
		Size:        size,
		Checksum:    checksum,
		GeneratedBy: p.Username,
		CreatedAt:   time.Now(),
	})
}

func (s *reportService) ListReports(ctx context.Context, p *auth.Principal) ([]Report, error) {
	if s.storage == nil {
		return nil, ErrArchiveUnavailable
	}
	return s.repo.ListReports(ctx, p.WorkspaceID)
}

func (s *reportService) Download(ctx context.Context, p *auth.Principal, id uuid.UUID) (Report, io.ReadCloser, error) {
	if s.storage == nil {
		return Report{}, nil, ErrArchiveUnavailable
	}

	rec, err := s.repo.GetReport(ctx, p.WorkspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Report{}, nil, ErrReportNotFound
		}
		return Report{}, nil, err
	}

	body, _, err := s.storage.Get(ctx, rec.ObjectKey)
	if err != nil {
		return Report{}, nil, err
	}
	return rec, body, nil
}
