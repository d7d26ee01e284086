package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	once   sync.Once
	logger *log.Logger
)

// Logger returns the process-wide logger. It writes to stderr until
// Configure redirects it.
func Logger() *log.Logger {
	once.Do(func() {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	})
	return logger
}

// Configure tees log output to filePath in addition to stderr. The returned
// func closes the file. An empty path leaves the logger untouched.
func Configure(filePath string) (func(), error) {
	if filePath == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}, err
	}

	Logger().SetOutput(io.MultiWriter(os.Stderr, f))

	return func() {
		Logger().SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
