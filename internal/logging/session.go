package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SessionLog is a per-session log file, used while the TUI owns the terminal.
type SessionLog struct {
	Dir  string
	ID   string
	Path string
	file *os.File
}

// NewSessionLog creates dir if needed and opens a new <timestamp>-<pid>.log file in it.
func NewSessionLog(dir string) (*SessionLog, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := sessionID()
	path := filepath.Join(dir, id+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &SessionLog{Dir: dir, ID: id, Path: path, file: file}, nil
}

// Writer returns the underlying log file writer.
func (s *SessionLog) Writer() io.Writer {
	return s.file
}

// Close closes the log file.
func (s *SessionLog) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// FindLatestLog returns the most recently modified .log file in dir,
// or "" when there is none.
func FindLatestLog(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog writes the last n lines of the file at path to w (all lines when n <= 0).
func TailLog(w io.Writer, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n <= 0 {
		_, err = io.Copy(w, file)
		return err
	}

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}
	for _, line := range ring {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
