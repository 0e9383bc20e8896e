// Package service manages asynchronous reconciliation jobs.
//
// A job wraps one reconciliation pass so it can be started from an HTTP
// request, polled for progress and cancelled. Jobs live only in memory;
// results are returned to the caller and never persisted.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veloxpay/reconciler/internal/application/reconcile"
	"github.com/veloxpay/reconciler/internal/domain/record"
)

// JobStatus represents the current state of a reconciliation job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// JobRequest holds the inputs for one reconciliation job.
type JobRequest struct {
	Transactions []record.Transaction
	Attachments  []record.Attachment
	Workers      int
}

// JobProgress holds real-time progress information.
type JobProgress struct {
	TotalAnchors     int       `json:"total_anchors"`
	ProcessedAnchors int       `json:"processed_anchors"`
	LastUpdate       time.Time `json:"last_update"`
}

// Job is a snapshot of a running or finished reconciliation job.
type Job struct {
	ID          string            `json:"id"`
	Status      JobStatus         `json:"status"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Progress    JobProgress       `json:"progress"`
	Result      *reconcile.Result `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ReconcileService starts and tracks reconciliation jobs.
type ReconcileService struct {
	orchestrator *reconcile.Orchestrator
	logger       *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*job
}

// job is the internal mutable job record; Job snapshots are copied out of it
// under the service lock.
type job struct {
	Job
	cancel context.CancelFunc
}

// NewReconcileService creates a service around the given orchestrator.
func NewReconcileService(orchestrator *reconcile.Orchestrator, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{
		orchestrator: orchestrator,
		logger:       logger,
		jobs:         make(map[string]*job),
	}
}

// StartJob starts a reconciliation job in the background and returns its id.
// The passed context is NOT the parent of the job; jobs run on
// context.Background() so they outlive the HTTP request that started them.
// Use CancelJob to stop a running job.
func (s *ReconcileService) StartJob(_ context.Context, req JobRequest) (string, error) {
	if len(req.Transactions) == 0 && len(req.Attachments) == 0 {
		return "", fmt.Errorf("nothing to reconcile: no transactions or attachments")
	}

	jobCtx, cancel := context.WithCancel(context.Background())

	j := &job{
		Job: Job{
			ID:        uuid.NewString(),
			Status:    StatusPending,
			StartedAt: time.Now(),
			Progress: JobProgress{
				TotalAnchors: len(req.Transactions) + len(req.Attachments),
				LastUpdate:   time.Now(),
			},
		},
		cancel: cancel,
	}

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	go s.runJob(jobCtx, j.ID, req)

	s.logger.Info("reconciliation job started",
		"job_id", j.ID,
		"transactions", len(req.Transactions),
		"attachments", len(req.Attachments),
	)

	return j.ID, nil
}

// GetJob returns a snapshot of a job by id.
func (s *ReconcileService) GetJob(jobID string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, exists := s.jobs[jobID]
	if !exists {
		return Job{}, fmt.Errorf("job not found: %s", jobID)
	}
	return j.Job, nil
}

// ListJobs returns snapshots of all known jobs.
func (s *ReconcileService) ListJobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j.Job)
	}
	return jobs
}

// CancelJob cancels a pending or running job.
func (s *ReconcileService) CancelJob(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if j.Status != StatusPending && j.Status != StatusRunning {
		return fmt.Errorf("job cannot be cancelled: status=%s", j.Status)
	}

	j.cancel()
	now := time.Now()
	j.Status = StatusCancelled
	j.CompletedAt = &now
	j.Progress.LastUpdate = now

	s.logger.Info("reconciliation job cancelled", "job_id", jobID)
	return nil
}

// runJob executes the reconciliation pass in a background goroutine.
func (s *ReconcileService) runJob(ctx context.Context, jobID string, req JobRequest) {
	s.update(jobID, func(j *job) {
		j.Status = StatusRunning
		j.Progress.LastUpdate = time.Now()
	})

	result, err := s.orchestrator.Run(ctx, req.Transactions, req.Attachments, reconcile.Options{
		Workers: req.Workers,
		OnProgress: func(done, total int) {
			s.update(jobID, func(j *job) {
				if done > j.Progress.ProcessedAnchors {
					j.Progress.ProcessedAnchors = done
				}
				j.Progress.LastUpdate = time.Now()
			})
		},
	})

	if err != nil {
		if ctx.Err() == context.Canceled {
			// Already marked cancelled in CancelJob.
			return
		}
		s.update(jobID, func(j *job) {
			now := time.Now()
			j.Status = StatusFailed
			j.Error = err.Error()
			j.CompletedAt = &now
		})
		s.logger.Error("reconciliation job failed", "job_id", jobID, "error", err)
		return
	}

	s.update(jobID, func(j *job) {
		now := time.Now()
		j.Status = StatusCompleted
		j.Result = result
		j.CompletedAt = &now
		j.Progress.ProcessedAnchors = j.Progress.TotalAnchors
		j.Progress.LastUpdate = now
	})
	s.logger.Info("reconciliation job completed", "job_id", jobID, "matched", result.Matched())
}

// update applies fn to a job under the service lock.
func (s *ReconcileService) update(jobID string, fn func(*job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, exists := s.jobs[jobID]; exists {
		fn(j)
	}
}
