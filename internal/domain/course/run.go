package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RunKindProcessVideo   = "process_video"
	RunKindGenerateQuiz   = "generate_quiz"
	RunKindTranslateVideo = "translate_video"
	RunKindTranslateMeta  = "translate_course_meta"

	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// ProcessingRun records one pipeline invocation and its final result.
type ProcessingRun struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind       string         `gorm:"column:kind;not null;index" json:"kind"`
	Status     string         `gorm:"column:status;not null;index" json:"status"` // running|succeeded|failed
	Language   string         `gorm:"column:language" json:"language"`
	VideoID    string         `gorm:"column:video_id;index" json:"video_id,omitempty"`
	RequestID  string         `gorm:"column:request_id;index" json:"request_id,omitempty"`
	Units      int            `gorm:"column:units;not null;default:0" json:"units"`
	Error      string         `gorm:"column:error" json:"error,omitempty"`
	ErrorKind  string         `gorm:"column:error_kind" json:"error_kind,omitempty"`
	DurationMS int64          `gorm:"column:duration_ms;not null;default:0" json:"duration_ms"`
	Result     datatypes.JSON `gorm:"column:result" json:"result,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (ProcessingRun) TableName() string { return "processing_run" }
