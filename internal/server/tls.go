package server

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumeforge/internal/errors"
)

// certReloader serves the current certificate through GetCertificate and
// swaps it when the files on disk change.
type certReloader struct {
	mu       sync.RWMutex
	cert     *tls.Certificate
	certFile string
	keyFile  string

	watcher       *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer
	stopChan      chan struct{}
	logger        *errors.Logger
}

func newCertReloader(certFile, keyFile string, debounceDelay time.Duration, logger *errors.Logger) (*certReloader, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &certReloader{
		cert:          &cert,
		certFile:      certFile,
		keyFile:       keyFile,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		logger:        logger,
	}, nil
}

// getCertificate is the tls.Config callback.
func (c *certReloader) getCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cert, nil
}

// reload re-reads the key pair from disk. A broken pair keeps the previous
// certificate in service.
func (c *certReloader) reload() {
	cert, err := tls.LoadX509KeyPair(c.certFile, c.keyFile)
	if err != nil {
		c.logger.LogError(err, "Certificate reload failed, keeping previous certificate",
			"cert_file", c.certFile)
		return
	}

	c.mu.Lock()
	c.cert = &cert
	c.mu.Unlock()

	c.logger.Info("Certificate reloaded", "cert_file", c.certFile)
}

// watch starts the fsnotify loop for the certificate files. Directories are
// watched too so atomic writes (write-then-rename) are caught.
func (c *certReloader) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	c.watcher = watcher

	watched := map[string]bool{}
	for _, file := range []string{c.certFile, c.keyFile} {
		dir := filepath.Dir(file)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				c.cleanupWatcher()
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	go c.watchLoop()

	c.logger.Info("Certificate file watcher started",
		"cert_file", c.certFile,
		"key_file", c.keyFile,
		"debounce_delay", c.debounceDelay)
	return nil
}

func (c *certReloader) cleanupWatcher() {
	if c.watcher != nil {
		if closeErr := c.watcher.Close(); closeErr != nil && c.logger != nil {
			c.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

func (c *certReloader) watchLoop() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if c.shouldProcessEvent(event) {
				c.scheduleReload()
			}

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.LogError(err, "Certificate watcher error")

		case <-c.stopChan:
			return
		}
	}
}

func (c *certReloader) shouldProcessEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if base != filepath.Base(c.certFile) && base != filepath.Base(c.keyFile) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload debounces bursts of file events into a single reload.
func (c *certReloader) scheduleReload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounceDelay, c.reload)
}

// stop shuts down the watcher and the pending reload timer.
func (c *certReloader) stop() {
	close(c.stopChan)

	c.mu.Lock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.mu.Unlock()

	c.cleanupWatcher()
	c.logger.Info("Certificate file watcher stopped")
}

// configureTLS applies the TLS mode to the HTTP server. It returns the
// reloader when auto-reload is active so shutdown can stop it.
func (s *Server) configureTLS(httpServer *http.Server) (*certReloader, error) {
	switch s.TLSConfig.Mode {
	case "", "disabled":
		return nil, nil
	case "server":
		// handled below
	default:
		return nil, fmt.Errorf("unsupported TLS mode: %s", s.TLSConfig.Mode)
	}

	if s.TLSConfig.CertFile == "" || s.TLSConfig.KeyFile == "" {
		return nil, fmt.Errorf("TLS mode 'server' requires certFile and keyFile")
	}

	minVersion, err := parseTLSVersion(s.TLSConfig.MinVersion)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{MinVersion: minVersion}

	var reloader *certReloader
	if s.TLSConfig.AutoReload.Enabled {
		reloader, err = newCertReloader(s.TLSConfig.CertFile, s.TLSConfig.KeyFile,
			s.TLSConfig.AutoReload.DebounceDelay, s.Logger)
		if err != nil {
			return nil, err
		}
		if err := reloader.watch(); err != nil {
			return nil, err
		}
		tlsConfig.GetCertificate = reloader.getCertificate
	}

	httpServer.TLSConfig = tlsConfig
	return reloader, nil
}

// parseTLSVersion converts a version string from the config to the tls constant
func parseTLSVersion(version string) (uint16, error) {
	switch version {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("unsupported TLS minimum version: %s", version)
	}
}
