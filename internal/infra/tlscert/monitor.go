package tlscert

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Monitor watches the certificate and key files and reports changes.
// It never reloads the TLS context.
type Monitor struct {
	certFile string
	keyFile  string
	logger   *slog.Logger
	onChange func(path string)
	debounce time.Duration

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu   sync.Mutex
	last map[string]time.Time
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithLogger sets the logger for the monitor.
func WithLogger(logger *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithOnChange sets a callback run for every reported change.
func WithOnChange(fn func(path string)) MonitorOption {
	return func(m *Monitor) {
		m.onChange = fn
	}
}

// WithDebounce sets the window in which repeated events for the same file
// are reported once.
func WithDebounce(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.debounce = d
	}
}

// NewMonitor creates a monitor for the given certificate and key files.
func NewMonitor(certFile, keyFile string, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		certFile: filepath.Clean(certFile),
		keyFile:  filepath.Clean(keyFile),
		logger:   slog.Default(),
		debounce: 500 * time.Millisecond,
		done:     make(chan struct{}),
		last:     make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start begins watching in a background goroutine.
func (m *Monitor) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tlscert: create watcher: %w", err)
	}

	// Watch the directories, not the files, so replaced files are seen.
	certDir := filepath.Dir(m.certFile)
	keyDir := filepath.Dir(m.keyFile)

	if err := watcher.Add(certDir); err != nil {
		watcher.Close()
		return fmt.Errorf("tlscert: watch cert dir %s: %w", certDir, err)
	}
	if keyDir != certDir {
		if err := watcher.Add(keyDir); err != nil {
			watcher.Close()
			return fmt.Errorf("tlscert: watch key dir %s: %w", keyDir, err)
		}
	}

	m.watcher = watcher
	m.wg.Add(1)
	go m.run()

	m.logger.Debug("certificate monitor started",
		"cert_file", m.certFile,
		"key_file", m.keyFile,
	)
	return nil
}

// Stop stops watching and waits for the background goroutine to exit.
func (m *Monitor) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		close(m.done)
		if m.watcher != nil {
			err = m.watcher.Close()
		}
		m.wg.Wait()
	})
	return err
}

func (m *Monitor) run() {
	defer m.wg.Done()

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handle(event)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Error("certificate monitor error", "error", err)

		case <-m.done:
			return
		}
	}
}

func (m *Monitor) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if name != m.certFile && name != m.keyFile {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	m.mu.Lock()
	now := time.Now()
	if now.Sub(m.last[name]) < m.debounce {
		m.mu.Unlock()
		return
	}
	m.last[name] = now
	m.mu.Unlock()

	m.logger.Warn("certificate file changed, restart to apply",
		"file", name,
		"op", event.Op.String(),
	)
	if m.onChange != nil {
		m.onChange(name)
	}
}
