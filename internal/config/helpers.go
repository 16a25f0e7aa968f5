package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
)

// GetDataPath returns the full path for a data file. Absolute paths are
// returned unchanged, relative ones are joined with Dir.
func (c *DataConfig) GetDataPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.Dir, filename)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// ResolveYearsAhead returns the default horizon for n == 0 and an error when n
// exceeds the configured maximum. Non-positive horizons other than zero are
// passed through for the analyzer to reject.
func (c *AnalysisConfig) ResolveYearsAhead(n int) (int, error) {
	if n == 0 {
		return c.DefaultYearsAhead, nil
	}
	if n > c.MaxYearsAhead {
		return 0, fmt.Errorf("years_ahead %d exceeds maximum %d", n, c.MaxYearsAhead)
	}
	return n, nil
}
