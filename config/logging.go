package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogWriter is the writer used for application, HTTP and database logs.
var LogWriter io.Writer = os.Stdout

const logFileName = "scopus-dashboard.log"

// LogFilePath returns the path of the dashboard log file inside dir.
func LogFilePath(dir string) string {
	if dir == "" {
		dir = "logs"
	}
	return filepath.Join(dir, logFileName)
}

// InitLogging tees the standard logger to stdout and the log file in dir.
// When the file cannot be opened logging stays on stdout. The caller closes
// the returned file on shutdown.
func InitLogging(dir string) (*os.File, io.Writer) {
	path := LogFilePath(dir)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		LogWriter = os.Stdout
		log.SetOutput(LogWriter)
		return nil, LogWriter
	}

	LogWriter = io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(LogWriter)
	return logFile, LogWriter
}
