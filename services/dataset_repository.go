package services

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"scopus-dashboard/models"
)

// DatasetProvider hands out the memoized base dataset.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*models.Dataset, error)
	Reload(ctx context.Context) (*models.Dataset, error)
}

type fileIdentity struct {
	size    int64
	modTime time.Time
}

func (id fileIdentity) same(other fileIdentity) bool {
	return id.size == other.size && id.modTime.Equal(other.modTime)
}

// DatasetRepository loads a workbook once and reuses it until the file changes
// or Reload is called.
type DatasetRepository struct {
	loader *DatasetLoader
	path   string
	sheet  string

	mu       sync.Mutex
	current  *models.Dataset
	identity fileIdentity
}

// NewDatasetRepository constructs a repository for the workbook at path.
func NewDatasetRepository(loader *DatasetLoader, path, sheet string) *DatasetRepository {
	if loader == nil {
		loader = NewDatasetLoader()
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &DatasetRepository{loader: loader, path: path, sheet: sheet}
}

// Path returns the workbook path.
func (r *DatasetRepository) Path() string { return r.path }

// Sheet returns the worksheet name.
func (r *DatasetRepository) Sheet() string { return r.sheet }

// Dataset returns the cached dataset, loading it when the file identity changed.
func (r *DatasetRepository) Dataset(ctx context.Context) (*models.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(r.path)
	if err != nil {
		if r.current != nil {
			log.Printf("dataset: stat %s failed, serving cached version %s: %v", r.path, shortVersion(r.current.Version), err)
			return r.current, nil
		}
		return nil, &LoadError{Path: r.path, Sheet: r.sheet, Err: err}
	}

	identity := fileIdentity{size: info.Size(), modTime: info.ModTime()}
	if r.current != nil && identity.same(r.identity) {
		return r.current, nil
	}
	return r.loadLocked(ctx, identity)
}

// Reload drops the cached dataset and parses the workbook again.
func (r *DatasetRepository) Reload(ctx context.Context) (*models.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var identity fileIdentity
	if info, err := os.Stat(r.path); err == nil {
		identity = fileIdentity{size: info.Size(), modTime: info.ModTime()}
	}
	return r.loadLocked(ctx, identity)
}

func (r *DatasetRepository) loadLocked(ctx context.Context, identity fileIdentity) (*models.Dataset, error) {
	ds, err := r.loader.Load(ctx, r.path, r.sheet)
	if err != nil {
		return nil, err
	}
	if r.current != nil && r.current.Version != ds.Version {
		log.Printf("dataset: version changed %s -> %s", shortVersion(r.current.Version), shortVersion(ds.Version))
	}
	r.current = ds
	r.identity = identity
	return ds, nil
}

// StaticDatasetRepository serves a dataset built in memory.
type StaticDatasetRepository struct {
	dataset *models.Dataset
}

// NewStaticDatasetRepository wraps an already built dataset.
func NewStaticDatasetRepository(ds *models.Dataset) *StaticDatasetRepository {
	return &StaticDatasetRepository{dataset: ds}
}

func (r *StaticDatasetRepository) Dataset(context.Context) (*models.Dataset, error) {
	return r.dataset, nil
}

func (r *StaticDatasetRepository) Reload(context.Context) (*models.Dataset, error) {
	return r.dataset, nil
}

func shortVersion(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}
