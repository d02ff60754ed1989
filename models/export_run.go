package models

import "time"

const (
	ExportRunStatusRunning = "running"
	ExportRunStatusSuccess = "success"
	ExportRunStatusFailed  = "failed"
)

const (
	ExportChannelDownload = "download"
	ExportChannelEmail    = "email"
	ExportChannelCLI      = "cli"
)

// ExportRun records one export request for the history endpoint.
type ExportRun struct {
	ID              uint64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	RunID           string     `json:"run_id" gorm:"column:run_id;type:char(36);uniqueIndex;not null"`
	Format          string     `json:"format" gorm:"column:format;type:varchar(16);not null"`
	Channel         string     `json:"channel" gorm:"column:channel;type:varchar(16);not null;default:'download'"`
	Status          string     `json:"status" gorm:"column:status;type:varchar(32);not null;default:'running'"`
	ErrorMessage    *string    `json:"error_message,omitempty" gorm:"column:error_message;type:text"`
	DatasetVersion  string     `json:"dataset_version" gorm:"column:dataset_version;type:varchar(64)"`
	Filters         *string    `json:"filters,omitempty" gorm:"column:filters;type:text"`
	RowCount        int        `json:"row_count" gorm:"column:row_count;not null;default:0"`
	ByteSize        int        `json:"byte_size" gorm:"column:byte_size;not null;default:0"`
	StartedAt       time.Time  `json:"started_at" gorm:"column:started_at;autoCreateTime"`
	FinishedAt      *time.Time `json:"finished_at,omitempty" gorm:"column:finished_at"`
	DurationSeconds *float64   `json:"duration_seconds,omitempty" gorm:"column:duration_seconds"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ExportRun) TableName() string { return "export_runs" }
