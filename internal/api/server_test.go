package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/quizgest/internal/config"
	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/pipeline"
	"github.com/dgallion1/quizgest/internal/sample"
	"github.com/dgallion1/quizgest/internal/stats"
	"github.com/dgallion1/quizgest/internal/store"
)

type fakeQuizzes struct {
	quizzes map[string]*store.Quiz
}

func (f *fakeQuizzes) GetQuiz(_ context.Context, id string) (*store.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuizzes) ListQuizzes(_ context.Context, limit int) ([]store.Quiz, error) {
	out := []store.Quiz{}
	for _, q := range f.quizzes {
		out = append(out, *q)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuizzes) DeleteQuiz(_ context.Context, id string) error {
	if _, ok := f.quizzes[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.quizzes, id)
	return nil
}

func testServer(t *testing.T, cfg config.Config, quizzes QuizStore) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := stats.NewWindow(time.Minute)
	eng := engine.New(nil, log, st)
	orch := pipeline.NewOrchestrator(cfg, eng, nil, log)
	return NewServer(eng, orch, quizzes, st, log, cfg)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "secret"
	s := testServer(t, cfg, nil)

	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

type pingingQuizzes struct {
	fakeQuizzes
	err error
}

func (p *pingingQuizzes) Ping(context.Context) error { return p.err }

func TestHealth_StorePing(t *testing.T) {
	quizzes := &pingingQuizzes{err: errors.New("disk I/O error")}
	s := testServer(t, config.Default(), quizzes)
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("failing store: status = %d, want 503", rec.Code)
	}

	quizzes.err = nil
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("healthy store: status = %d, want 200", rec.Code)
	}
}

func TestAuth(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "secret"
	s := testServer(t, cfg, nil)

	rec := do(t, s, http.MethodPost, "/api/sample", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no key: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/sample", strings.NewReader(`{"count":2}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with key: status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
}

func TestGenerate(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	body, _ := json.Marshal(map[string]any{
		"text":          sample.Text("physics"),
		"questionType":  "true_false",
		"questionCount": "4",
		"difficulty":    "medium",
	})

	rec := do(t, s, http.MethodPost, "/api/generate", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp engine.Response
	decode(t, rec, &resp)
	if len(resp.Questions) != 4 {
		t.Fatalf("got %d questions, want 4", len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if len(q.Options) != 2 || q.Options[0] != "True" {
			t.Errorf("true/false options = %v", q.Options)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	tests := []struct {
		name string
		body string
		code int
		kind string
	}{
		{"missing text", `{"questionCount":3}`, http.StatusBadRequest, engine.KindInvalidRequest},
		{"malformed", `{"text":`, http.StatusBadRequest, engine.KindInvalidRequest},
		{"empty text", `{"text":"   "}`, http.StatusBadRequest, engine.KindEmptyContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/generate", tt.body)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			var body engineErrorBody
			decode(t, rec, &body)
			if body.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", body.Kind, tt.kind)
			}
		})
	}
}

func TestGenerate_TooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.MaxTextBytes = 16
	s := testServer(t, cfg, nil)

	big := strings.Repeat("a", jsonOverhead+64)
	rec := do(t, s, http.MethodPost, "/api/generate", `{"text":"`+big+`"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestAnalyze(t *testing.T) {
	s := testServer(t, config.Default(), nil)

	rec := do(t, s, http.MethodPost, "/api/analyze", `{"text":"Photosynthesis is the process by which plants convert light into chemical energy."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var report map[string]any
	decode(t, rec, &report)
	if report["wordCount"] == nil {
		t.Errorf("report missing wordCount: %v", report)
	}

	rec = do(t, s, http.MethodPost, "/api/analyze", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing text: status = %d, want 400", rec.Code)
	}
	var body engineErrorBody
	decode(t, rec, &body)
	if _, ok := body.Fields["text"]; !ok {
		t.Errorf("fields = %v, want text", body.Fields)
	}
}

func TestSample(t *testing.T) {
	s := testServer(t, config.Default(), nil)

	rec := do(t, s, http.MethodPost, "/api/sample", `{"questionType":"short_answer","count":"3","topic":"history"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp engine.Response
	decode(t, rec, &resp)
	if len(resp.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(resp.Questions))
	}

	rec = do(t, s, http.MethodPost, "/api/sample", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty body: status = %d, want 200", rec.Code)
	}
	decode(t, rec, &resp)
	if len(resp.Questions) != 10 {
		t.Errorf("default count: got %d, want 10", len(resp.Questions))
	}
}

func multipartBody(t *testing.T, field string, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	for k, v := range values {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	body, ct := multipartBody(t, "file", map[string]string{"notes.txt": sample.Text("chemistry")},
		map[string]string{"questionType": "multiple_choice", "questionCount": "5"})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (%s)", rec.Code, rec.Body.String())
	}

	var accepted map[string]string
	decode(t, rec, &accepted)
	if accepted["status"] != string(pipeline.StatusQueued) {
		t.Errorf("status = %q, want queued", accepted["status"])
	}
	if accepted["poll_url"] != "/api/jobs/"+accepted["job_id"] {
		t.Errorf("poll_url = %q", accepted["poll_url"])
	}

	rec = do(t, s, http.MethodGet, accepted["poll_url"], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("job status = %d, want 200", rec.Code)
	}
	var snap pipeline.JobSnapshot
	decode(t, rec, &snap)
	if snap.Filename != "notes.txt" || snap.Options.QuestionCount != 5 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestUpload_Rejections(t *testing.T) {
	s := testServer(t, config.Default(), nil)

	body, ct := multipartBody(t, "file", map[string]string{"binary.exe": "MZ"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported type: status = %d, want 400", rec.Code)
	}

	body, ct = multipartBody(t, "other", map[string]string{"notes.txt": "x"}, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: status = %d, want 400", rec.Code)
	}
}

func TestUpload_QueueFull(t *testing.T) {
	cfg := config.Default()
	cfg.MaxQueueSize = 1
	s := testServer(t, cfg, nil)

	codes := make([]int, 0, 2)
	for range 2 {
		body, ct := multipartBody(t, "file", map[string]string{"notes.txt": sample.Text("")}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusAccepted || codes[1] != http.StatusServiceUnavailable {
		t.Errorf("codes = %v, want [202 503]", codes)
	}
}

func TestBatchUpload(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	body, ct := multipartBody(t, "files", map[string]string{
		"a.txt":   sample.Text("biology"),
		"b.md":    sample.Text("physics"),
		"c.bogus": "nope",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 (%s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Jobs []map[string]string `json:"jobs"`
	}
	decode(t, rec, &resp)
	if len(resp.Jobs) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Jobs))
	}
	queued, rejected := 0, 0
	for _, j := range resp.Jobs {
		if j["error"] != "" {
			rejected++
		} else if j["job_id"] != "" {
			queued++
		}
	}
	if queued != 2 || rejected != 1 {
		t.Errorf("queued=%d rejected=%d, want 2 and 1", queued, rejected)
	}
}

func TestJobStatus_NotFound(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	rec := do(t, s, http.MethodGet, "/api/jobs/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestQuizzes(t *testing.T) {
	quizzes := &fakeQuizzes{quizzes: map[string]*store.Quiz{
		"q1": {ID: "q1", Filename: "notes.txt", QuestionType: "mixed"},
	}}
	s := testServer(t, config.Default(), quizzes)

	rec := do(t, s, http.MethodGet, "/api/quizzes?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list struct {
		Quizzes []store.Quiz `json:"quizzes"`
	}
	decode(t, rec, &list)
	if len(list.Quizzes) != 1 || list.Quizzes[0].ID != "q1" {
		t.Errorf("list = %+v", list.Quizzes)
	}

	if rec := do(t, s, http.MethodGet, "/api/quizzes?limit=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/quizzes/q1", ""); rec.Code != http.StatusOK {
		t.Errorf("get: status = %d, want 200", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/quizzes/q1", ""); rec.Code != http.StatusOK {
		t.Errorf("delete: status = %d, want 200", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/quizzes/q1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
	if rec := do(t, s, http.MethodDelete, "/api/quizzes/q1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("delete twice: status = %d, want 404", rec.Code)
	}
}

func TestQuizzes_StoreDisabled(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	for _, path := range []string{"/api/quizzes", "/api/quizzes/x"} {
		if rec := do(t, s, http.MethodGet, path, ""); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
		}
	}
}

func TestStats(t *testing.T) {
	s := testServer(t, config.Default(), nil)
	do(t, s, http.MethodPost, "/api/sample", `{"count":2}`)
	do(t, s, http.MethodPost, "/api/generate", `{"text":""}`)

	rec := do(t, s, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Latency    stats.Snapshot `json:"latency"`
		QueueDepth int            `json:"queue_depth"`
		Jobs       int            `json:"jobs"`
	}
	decode(t, rec, &resp)
	if resp.Latency.Count != 2 || resp.Latency.ByOp["sample"] != 1 {
		t.Errorf("latency = %+v", resp.Latency)
	}
	if resp.Latency.Failures != 0 {
		t.Errorf("failures = %d, want 0 for user errors", resp.Latency.Failures)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"notes.txt":            "notes.txt",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\doc.docx`: "doc.docx",
		"":                     "unnamed",
		"a..b.md":              "a_b.md",
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRequestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			jsonError(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte("hello"))
	}))

	tests := []struct {
		path  string
		level string
	}{
		{"/health", "level=DEBUG"},
		{"/api/stats", "level=INFO"},
		{"/missing", "level=WARN"},
	}
	for _, tt := range tests {
		buf.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("%s: log %q, want %s", tt.path, buf.String(), tt.level)
		}
	}
	if !strings.Contains(buf.String(), "status=404") {
		t.Errorf("log %q missing status", buf.String())
	}
}
