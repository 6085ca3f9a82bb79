package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const prefix = "[myplan] "

var (
	Logger  *log.Logger
	logFile *os.File
	mu      sync.Mutex
)

// The TUI owns stdout, so until Initialize points the logger at the state
// directory everything goes to debug.log in the working directory. If that
// file can't be opened logging is discarded rather than aborting startup.
func init() {
	f, err := os.OpenFile("debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)
		return
	}
	logFile = f
	Logger = log.New(f, prefix, log.LstdFlags|log.Lshortfile)
}

// Initialize moves the log to <logDir>/debug.log, creating the directory.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		Logger.Printf("Failed to create log dir %s: %v", logDir, err)
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, prefix, log.LstdFlags|log.Lshortfile)
	Logger.Printf("Logging to %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
