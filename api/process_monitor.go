package api

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ProcessMonitor watches the parent process and triggers shutdown when
// it dies. This prevents an orphaned server process when a front-end
// client (a local GUI or editor plugin that spawned clb serve) crashes
// or is force-quit.
type ProcessMonitor struct {
	parentPID     int
	checkInterval time.Duration
	shutdownFunc  func()
	logger        *logrus.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewProcessMonitor creates a monitor that calls shutdownFunc when the
// parent process dies. The parent PID is captured at creation time via
// os.Getppid().
func NewProcessMonitor(shutdownFunc func(), logger *logrus.Logger) *ProcessMonitor {
	return &ProcessMonitor{
		parentPID:     os.Getppid(),
		checkInterval: 2 * time.Second,
		shutdownFunc:  shutdownFunc,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start begins monitoring the parent process in a background goroutine.
func (pm *ProcessMonitor) Start() {
	go pm.monitorLoop()
}

// Stop gracefully stops the monitor goroutine. Safe to call multiple
// times — only the first call has an effect.
func (pm *ProcessMonitor) Stop() {
	pm.stopOnce.Do(func() {
		close(pm.stopChan)
	})
}

// monitorLoop runs in a goroutine and periodically checks if the parent
// process is still alive. When the parent dies, the OS re-parents this
// process (typically to PID 1), which this loop detects via a PID change.
func (pm *ProcessMonitor) monitorLoop() {
	ticker := time.NewTicker(pm.checkInterval)
	defer ticker.Stop()

	pm.logger.Infof("process monitor started (parent pid: %d, check interval: %v)", pm.parentPID, pm.checkInterval)

	for {
		select {
		case <-ticker.C:
			currentPPID := os.Getppid()
			if currentPPID != pm.parentPID {
				pm.logger.Warnf("parent process died (ppid changed: %d -> %d), shutting down", pm.parentPID, currentPPID)
				pm.shutdownFunc()
				return
			}
		case <-pm.stopChan:
			pm.logger.Info("process monitor stopped")
			return
		}
	}
}
