package dataset

import (
	"context"
	"errors"
	"sort"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/eskmag/greenpulse/internal/config"
)

// ErrDatasetNotFound is returned for unknown dataset names and missing files
var ErrDatasetNotFound = errors.New("dataset not found")

// Source resolves dataset names to series
type Source interface {
	Datasets() []string
	Load(ctx context.Context, name string) (analytics.TimeSeriesData, error)
}

// FileSource serves the datasets configured under data.datasets from CSV
// files in data.dir
type FileSource struct {
	data     config.DataConfig
	datasets map[string]config.DatasetConfig
}

// NewFileSource creates a FileSource from the data configuration
func NewFileSource(cfg config.DataConfig) *FileSource {
	datasets := make(map[string]config.DatasetConfig, len(cfg.Datasets))
	for name, ds := range cfg.Datasets {
		datasets[name] = ds
	}
	return &FileSource{data: config.DataConfig{Dir: cfg.Dir}, datasets: datasets}
}

// Datasets returns the configured dataset names, sorted
func (s *FileSource) Datasets() []string {
	names := make([]string, 0, len(s.datasets))
	for name := range s.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads the named dataset. The file is read on every call.
func (s *FileSource) Load(ctx context.Context, name string) (analytics.TimeSeriesData, error) {
	ds, ok := s.datasets[name]
	if !ok {
		return nil, ErrDatasetNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return LoadCSV(s.data.GetDataPath(ds.File), &CSVOptions{
		YearColumn:  ds.YearColumn,
		ValueColumn: ds.ValueColumn,
	})
}
