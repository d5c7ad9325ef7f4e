package library

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ResourceAuthor = "author"
	ResourceBook   = "book"
)

// PatchEvent records a persisted patch: the document the client sent and the
// effective diff it produced on the update bean.
type PatchEvent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Resource   string         `gorm:"not null;column:resource;index:idx_patch_events_resource" json:"resource"`
	ResourceID uint           `gorm:"not null;column:resource_id;index:idx_patch_events_resource" json:"resource_id"`
	Patch      datatypes.JSON `gorm:"column:patch" json:"patch"`
	Diff       datatypes.JSON `gorm:"column:diff" json:"diff"`
	TraceID    string         `gorm:"column:trace_id" json:"trace_id,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (PatchEvent) TableName() string { return "patch_events" }

func (e *PatchEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
