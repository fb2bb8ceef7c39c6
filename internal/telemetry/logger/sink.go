package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// fallbackFileName is used when the executable name cannot be determined.
const fallbackFileName = "tlsedge-server"

// SinkConfig selects where log entries are written.
type SinkConfig struct {
	// ToFile writes to a daily rotated file instead of stdout.
	ToFile bool
	// Dir is the directory of the log file.
	Dir string
	// FileName overrides the file name. Defaults to the executable name.
	FileName string
}

// Sink is an opened log destination. Close must be called before exit.
type Sink interface {
	io.WriteCloser
	// Path is the file being written, or "" for stdout.
	Path() string
}

// OpenSink opens the log destination described by cfg. The file sink is
// rotated at every local midnight; the previous day's file is kept with a
// timestamp suffix.
func OpenSink(cfg SinkConfig) (Sink, error) {
	if !cfg.ToFile {
		return stdoutSink{}, nil
	}

	name := cfg.FileName
	if name == "" {
		name = executableName()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &fileSink{
		path: filepath.Join(dir, name),
		done: make(chan struct{}),
	}
	s.file = &lumberjack.Logger{
		Filename:  s.path,
		LocalTime: true,
	}

	s.wg.Add(1)
	go s.rotateDaily()

	return s, nil
}

type stdoutSink struct{}

func (stdoutSink) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdoutSink) Close() error                { return nil }
func (stdoutSink) Path() string                { return "" }

type fileSink struct {
	path string
	file *lumberjack.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

func (s *fileSink) Path() string {
	return s.path
}

// Close stops rotation and closes the file.
func (s *fileSink) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	s.wg.Wait()
	return s.file.Close()
}

func (s *fileSink) rotateDaily() {
	defer s.wg.Done()

	for {
		now := time.Now()
		timer := time.NewTimer(nextMidnight(now).Sub(now))
		select {
		case <-s.done:
			timer.Stop()
			return
		case <-timer.C:
			_ = s.file.Rotate()
		}
	}
}

// nextMidnight returns the first local midnight strictly after t.
func nextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

func executableName() string {
	exe, err := os.Executable()
	if err != nil {
		return fallbackFileName
	}
	name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	if name == "" || name == "." {
		return fallbackFileName
	}
	return name
}
