package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Koine/internal/dataset"
	"github.com/FocuswithJustin/Koine/internal/logging"
)

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// SyncRequest describes an asynchronous definition-sync job: re-read the
// verse and lexicon files from disk and fill in missing Strong's
// definitions on the verse tokens.
type SyncRequest struct {
	VersesPath  string `json:"verses_path"`
	LexiconPath string `json:"lexicon_path"`
	Write       bool   `json:"write"` // write the synced verses back to disk
}

// SyncResult is the outcome of a completed sync job.
type SyncResult struct {
	Report   dataset.SyncReport `json:"report"`
	Duration string             `json:"duration"`
}

// Job represents an asynchronous sync job.
type Job struct {
	ID          string             `json:"id"`
	Status      JobStatus          `json:"status"`
	Progress    int                `json:"progress"` // 0-100
	Result      *SyncResult        `json:"result,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	CompletedAt string             `json:"completed_at,omitempty"`
	Request     SyncRequest        `json:"request"`
	ctx         context.Context    `json:"-"`
	cancel      context.CancelFunc `json:"-"`
}

// JobStore manages sync jobs in memory.
type JobStore struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

// NewJobStore creates a new job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
	}
}

var globalJobStore = NewJobStore()

// Create creates a new job and returns it.
func (s *JobStore) Create(req SyncRequest) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC().Format(time.RFC3339)

	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobStatusPending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
		Request:   req,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.jobs[job.ID] = job
	return job
}

// Get retrieves a job by ID.
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	return job, exists
}

// Update updates a job's status and progress.
func (s *JobStore) Update(id string, status JobStatus, progress int, result *SyncResult, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	// Terminal statuses are final. A worker goroutine racing a DELETE
	// must not resurrect a cancelled job with its later progress updates.
	switch job.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return fmt.Errorf("job already %s: %s", job.Status, id)
	}

	job.Status = status
	job.Progress = progress
	job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if result != nil {
		job.Result = result
	}

	if errMsg != "" {
		job.Error = errMsg
	}

	if status == JobStatusCompleted || status == JobStatusFailed || status == JobStatusCancelled {
		job.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return nil
}

// List returns all jobs.
func (s *JobStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// Cancel cancels a pending or running job.
func (s *JobStore) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	if job.Status != JobStatusPending && job.Status != JobStatusRunning {
		return fmt.Errorf("job cannot be cancelled (status: %s)", job.Status)
	}

	if job.cancel != nil {
		job.cancel()
	}

	job.Status = JobStatusCancelled
	job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	job.CompletedAt = job.UpdatedAt

	return nil
}

// runJob executes a sync job in a goroutine.
func runJob(job *Job) {
	go func() {
		start := time.Now()
		globalJobStore.Update(job.ID, JobStatusRunning, 10, nil, "")
		broadcastJobEvent(job.ID, JobStatusRunning, 10)

		verses, err := dataset.LoadVerses(job.Request.VersesPath)
		if err != nil {
			failJob(job.ID, fmt.Sprintf("load verses: %v", err))
			return
		}
		globalJobStore.Update(job.ID, JobStatusRunning, 40, nil, "")

		lexicon, err := dataset.LoadLexicon(job.Request.LexiconPath)
		if err != nil {
			failJob(job.ID, fmt.Sprintf("load lexicon: %v", err))
			return
		}
		globalJobStore.Update(job.ID, JobStatusRunning, 60, nil, "")

		select {
		case <-job.ctx.Done():
			globalJobStore.Update(job.ID, JobStatusCancelled, 60, nil, "Job cancelled by user")
			broadcastJobEvent(job.ID, JobStatusCancelled, 60)
			return
		default:
		}

		report := dataset.SyncDefinitions(verses, lexicon)
		globalJobStore.Update(job.ID, JobStatusRunning, 80, nil, "")

		if job.Request.Write {
			if err := dataset.WriteVerses(job.Request.VersesPath, verses); err != nil {
				failJob(job.ID, fmt.Sprintf("write verses: %v", err))
				return
			}
		}

		result := &SyncResult{
			Report:   report,
			Duration: time.Since(start).String(),
		}
		globalJobStore.Update(job.ID, JobStatusCompleted, 100, result, "")
		broadcastJobEvent(job.ID, JobStatusCompleted, 100)
		logging.Info("sync job completed",
			"job_id", job.ID,
			"updated", report.Updated,
			"not_found", report.NotFound)
	}()
}

func failJob(id, msg string) {
	globalJobStore.Update(id, JobStatusFailed, 100, nil, msg)
	broadcastJobEvent(id, JobStatusFailed, 100)
	logging.Error("sync job failed", "job_id", id, "error", msg)
}

// handleJobs handles POST /jobs - create a new sync job.
func handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST is allowed")
		return
	}

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if req.VersesPath == "" {
		req.VersesPath = ServerConfig.VersesPath
	}
	if req.LexiconPath == "" {
		req.LexiconPath = ServerConfig.LexiconPath
	}
	if req.VersesPath == "" || req.LexiconPath == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "verses_path and lexicon_path are required")
		return
	}

	job := globalJobStore.Create(req)
	runJob(job)

	respond(w, http.StatusCreated, job)
}

// handleJobByID handles GET /jobs/{id} (status) and DELETE /jobs/{id} (cancel).
func handleJobByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, exists := globalJobStore.Get(id)
		if !exists {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
			return
		}
		respond(w, http.StatusOK, job)
	case http.MethodDelete:
		if err := globalJobStore.Cancel(id); err != nil {
			if strings.Contains(err.Error(), "not found") {
				respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
				return
			}
			respondError(w, http.StatusBadRequest, "CANCEL_FAILED", err.Error())
			return
		}
		respond(w, http.StatusOK, map[string]string{"message": "Job cancelled"})
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and DELETE are allowed")
	}
}
