package models

import (
	"path"
	"time"

	"github.com/kardianos/osext"
)

// AppConfig is the application's main configuration structure.
// It is loaded once on startup and never changed afterwards.
type AppConfig struct {
	// The directory where Fyyur stores all of its data - defaults to the /data subdirectory of the folder, the
	// Fyyur executable resides in
	DataDir string `json:"dataDir"`
	// File name of the SQLite database inside the data directory
	Database string `json:"database"`
	// The IP address to listen at - including the port number
	ListenAddress string `json:"listenAddress"`
	// Name of the time zone form timestamps without offset are read in and shows are displayed in
	TimeZone string `json:"timeZone"`
	// Maximum duration of a single request (Go duration syntax, e.g. "10s")
	RequestTimeout string `json:"requestTimeout"`
	// Upper bound for the number of open database connections
	MaxOpenConns int `json:"maxOpenConns"`
	// The logrus level to log at
	LogLevel string `json:"logLevel"`
}

// GetDefaultConfig returns the default configuration values for the application
func GetDefaultConfig() (*AppConfig, error) {
	execDir, err := osext.ExecutableFolder()
	if err != nil {
		return nil, err
	}
	return &AppConfig{
		DataDir:        path.Join(execDir, "data"),
		Database:       "fyyur.db",
		ListenAddress:  ":5000",
		TimeZone:       "Local",
		RequestTimeout: "10s",
		MaxOpenConns:   4,
		LogLevel:       "info",
	}, nil
}

// Location returns the configured time zone - falling back to UTC if the zone is unknown
func (c AppConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timeout returns the configured request timeout. Zero means no timeout
func (c AppConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// DatabasePath returns the full path to the SQLite database file
func (c AppConfig) DatabasePath() string {
	return path.Join(c.DataDir, c.Database)
}
