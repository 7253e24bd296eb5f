// Package monitor reports batch progress to a status file and the log.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultInterval is used when Dependencies.Interval is zero.
const DefaultInterval = time.Second

// Progress is implemented by worker.Manager.
type Progress interface {
	Completed() int
	Failed() int
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Logger     *slog.Logger
	Progress   Progress
	Total      int
	StatusPath string // optional status file, rewritten every interval
	Interval   time.Duration
}

// Status is a snapshot of batch progress.
type Status struct {
	Time      time.Time `json:"time"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
	Elapsed   string    `json:"elapsed"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	start     time.Time
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = DefaultInterval
	}
	return &Service{
		deps:     deps,
		start:    time.Now(),
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus returns the current progress.
func (s *Service) GetStatus() Status {
	return Status{
		Time:      time.Now(),
		Total:     s.deps.Total,
		Completed: s.deps.Progress.Completed(),
		Failed:    s.deps.Progress.Failed(),
		Elapsed:   time.Since(s.start).Round(time.Millisecond).String(),
	}
}

func (s *Service) writeStatus(f *os.File, st Status) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}

	var statusFile *os.File
	if s.deps.StatusPath != "" {
		var err error
		statusFile, err = os.Create(s.deps.StatusPath)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("error creating status file: %w", err)
		}
	}

	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()
		if statusFile != nil {
			defer statusFile.Close()
		}

		logger := s.deps.Logger
		logger.Debug("Starting status monitor goroutine", "total", s.deps.Total)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		report := func() {
			st := s.GetStatus()
			logger.Info("Batch progress", "completed", st.Completed, "failed", st.Failed, "total", st.Total)
			if statusFile != nil {
				if err := s.writeStatus(statusFile, st); err != nil {
					logger.Error("Error writing status file", "error", err)
				}
			}
		}

		for {
			select {
			case <-stop:
				report()
				return
			case <-ticker.C:
				report()
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for its final report.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()
	<-done
}
