package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"scopus-dashboard/config"
	"scopus-dashboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExportRunNotFound     = errors.New("export run not found")
	ErrExportHistoryDisabled = errors.New("export history requires a database (DB_HOST)")
)

const maxExportErrorLen = 2000

// ExportRunService keeps an audit trail of exports in the export_runs table.
// Without a database every method is a no-op.
type ExportRunService struct {
	db *gorm.DB
}

func NewExportRunService(db *gorm.DB) *ExportRunService {
	if db == nil {
		db = config.DB
	}
	return &ExportRunService{db: db}
}

// Enabled reports whether runs are persisted.
func (s *ExportRunService) Enabled() bool {
	return s != nil && s.db != nil
}

// Start records a running export of view in format.
func (s *ExportRunService) Start(ctx context.Context, format ExportFormat, channel string, view *PublicationView) (*models.ExportRun, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if channel == "" {
		channel = models.ExportChannelDownload
	}

	run := &models.ExportRun{
		RunID:     uuid.NewString(),
		Format:    string(format),
		Channel:   channel,
		Status:    models.ExportRunStatusRunning,
		RowCount:  len(view.Publications),
		StartedAt: time.Now(),
	}
	if view.Dataset != nil {
		run.DatasetVersion = view.Dataset.Version
	}
	if encoded, err := json.Marshal(view.Query.Encode()); err == nil {
		filters := string(encoded)
		run.Filters = &filters
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("record export run: %w", err)
	}
	return run, nil
}

// Finish marks run as succeeded, or failed when exportErr is set.
func (s *ExportRunService) Finish(ctx context.Context, run *models.ExportRun, artifact *ExportArtifact, exportErr error) error {
	if !s.Enabled() || run == nil {
		return nil
	}

	finished := time.Now()
	updates := map[string]interface{}{
		"status":           models.ExportRunStatusSuccess,
		"finished_at":      finished,
		"duration_seconds": finished.Sub(run.StartedAt).Seconds(),
	}
	if artifact != nil {
		updates["byte_size"] = len(artifact.Data)
	}
	if exportErr != nil {
		msg := exportErr.Error()
		if len(msg) > maxExportErrorLen {
			msg = msg[:maxExportErrorLen-3] + "..."
		}
		updates["status"] = models.ExportRunStatusFailed
		updates["error_message"] = msg
	}

	res := s.db.WithContext(persistentContext(ctx)).Model(&models.ExportRun{}).Where("run_id = ?", run.RunID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExportRunNotFound
	}
	return nil
}

// Recent lists the latest runs, newest first.
func (s *ExportRunService) Recent(ctx context.Context, limit int) ([]models.ExportRun, error) {
	if !s.Enabled() {
		return nil, ErrExportHistoryDisabled
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var runs []models.ExportRun
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Track wraps build with Start and Finish. Audit failures are logged and
// never fail the export itself.
func (s *ExportRunService) Track(ctx context.Context, format ExportFormat, channel string, view *PublicationView, build func() (*ExportArtifact, error)) (*ExportArtifact, error) {
	run, err := s.Start(ctx, format, channel, view)
	if err != nil {
		log.Printf("export: audit start failed: %v", err)
	}

	artifact, buildErr := build()

	s.Complete(ctx, run, artifact, buildErr)
	return artifact, buildErr
}

// Complete is Finish for callers that must not fail on the audit: errors are
// logged. A nil run is ignored.
func (s *ExportRunService) Complete(ctx context.Context, run *models.ExportRun, artifact *ExportArtifact, exportErr error) {
	if run == nil {
		return
	}
	if err := s.Finish(ctx, run, artifact, exportErr); err != nil {
		log.Printf("export: audit finish for %s failed: %v", run.RunID, err)
	}
}
