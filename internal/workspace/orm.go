package workspace

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant partition. LastSerial is the store-side ticket
// serial counter: it only ever grows, so deleted serial numbers are never
// handed out again, and it survives process restarts because it lives in
// the row rather than in memory.
type Workspace struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex"`
	LastSerial int64     `json:"last_serial" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:now()"`
}

type VocabKind string

const (
	KindTaskType VocabKind = "task_type"
	KindArea     VocabKind = "area"
)

// VocabEntry is one configurable classification value. Tasks are not
// validated against these lists: removing an entry never touches tickets
// that already carry the value.
type VocabEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	WorkspaceID uuid.UUID `json:"workspace_id" gorm:"type:uuid;not null;uniqueIndex:idx_vocab_workspace_kind_value"`
	Kind        VocabKind `json:"kind" gorm:"type:text;not null;uniqueIndex:idx_vocab_workspace_kind_value;check:kind IN ('task_type', 'area')"`
	Value       string    `json:"value" gorm:"not null;uniqueIndex:idx_vocab_workspace_kind_value"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:now()"`
}

// Default vocabularies seeded into a fresh workspace.
var (
	DefaultTaskTypes = []string{
		"New Line/Line Shift",
		"Red Signal",
		"Physical Support",
		"No Internet",
		"Speed Issue",
		"ONU Fiber Remove",
		"Router Setup",
		"Reconnection",
		"Test Router Collect",
		"Auto Disconnect",
		"Onu Problem",
		"User Update",
	}

	DefaultAreas = []string{"Rampura", "Banasree", "Bhola"}
)
