package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/quizgest/internal/engine"
)

// JobStatus represents the state of an upload job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusDeduping   JobStatus = "deduplicating"
	StatusGenerating JobStatus = "generating"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusDuplicate  JobStatus = "duplicate"
)

// Job tracks the state of a single uploaded document.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	QuizID string `json:"quiz_id,omitempty"`

	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`

	Options  engine.Options `json:"options"`
	Progress Progress       `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *engine.Response
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	Format             string   `json:"format,omitempty"`
	Placeholder        bool     `json:"placeholder"`
	TextChars          int      `json:"text_chars"`
	QuestionsRequested int      `json:"questions_requested"`
	QuestionsGenerated int      `json:"questions_generated"`
	Errors             []string `json:"errors"`
}

// NewJob creates a queued job for an uploaded file.
func NewJob(filename, contentType string, data []byte, opts engine.Options) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentType: contentType,
		Options:     opts,
		Progress:    Progress{QuestionsRequested: opts.QuestionCount},
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
	now  func() time.Time
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes jobs not updated within the TTL and returns how many
// were removed.
func (s *JobStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetExtracted records what extraction produced.
func (j *Job) SetExtracted(format string, placeholder bool, chars int, hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Format = format
	j.Progress.Placeholder = placeholder
	j.Progress.TextChars = chars
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetResult records the generated question set and the quiz it is stored as.
func (j *Job) SetResult(resp *engine.Response, quizID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = resp
	j.QuizID = quizID
	if resp != nil {
		j.Progress.QuestionsGenerated = len(resp.Questions)
	}
	j.UpdatedAt = time.Now()
}

// SetQuizID records the stored quiz ID.
func (j *Job) SetQuizID(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.QuizID = id
	j.UpdatedAt = time.Now()
}

// Result returns the generated question set, or nil before generation.
func (j *Job) Result() *engine.Response {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload once it is no longer needed.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string           `json:"job_id"`
	QuizID      string           `json:"quiz_id,omitempty"`
	Status      JobStatus        `json:"status"`
	Phase       string           `json:"phase"`
	Filename    string           `json:"filename"`
	ContentHash string           `json:"content_hash,omitempty"`
	Options     engine.Options   `json:"options"`
	Progress    Progress         `json:"progress"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Result      *engine.Response `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. The result is
// included once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	snap := JobSnapshot{
		ID:          j.ID,
		QuizID:      j.QuizID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Options:     j.Options,
		Progress:    j.Progress,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	snap.Progress.Errors = errs
	if j.Status.Done() {
		snap.Result = j.result
	}
	return snap
}

// Done reports whether s is a terminal status.
func (s JobStatus) Done() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusPartial, StatusDuplicate:
		return true
	}
	return false
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// QuizHash identifies a question set by its source text and the options it
// was generated with.
func QuizHash(text string, opts engine.Options) string {
	key := fmt.Sprintf("%s\x00%s\x00%d\x00%s", text, opts.QuestionType, opts.QuestionCount, opts.Difficulty)
	return ContentHashHex([]byte(key))
}
