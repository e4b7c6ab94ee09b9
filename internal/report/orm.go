package report

import (
	"time"

	"github.com/google/uuid"
)

// Report is one archived export: the workbook itself lives in object
// storage under ObjectKey, this row is the catalog entry.
type Report struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;not null;index"`
	ObjectKey   string    `json:"-" gorm:"not null"`
	Filename    string    `json:"filename" gorm:"not null"`
	Size        int64     `json:"size" gorm:"not null"`
	Checksum    string    `json:"checksum" gorm:"not null"`
	GeneratedBy string    `json:"generated_by" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:now()"`
}
