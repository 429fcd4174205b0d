package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/orrn/printbridge/internal/config"
	"github.com/orrn/printbridge/internal/db"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	cfg.Database.Path = filepath.Join(t.TempDir(), "printjobs.db")

	database, err := db.Open(db.Config{Path: cfg.Database.Path})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewRouter(cfg, db.NewStore(database))
}

func postJob(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/print-jobs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "bridge.example.com"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndViewRoundtrip(t *testing.T) {
	router := newTestRouter(t)

	w := postJob(t, router, `{"data":[{"zpl":"^XA^XZ"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		JobID   string `json:"job_id"`
		ViewURL string `json:"view_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp.JobID) != 36 {
		t.Errorf("Expected 36-char job id, got %q", resp.JobID)
	}
	want := fmt.Sprintf("http://bridge.example.com/view?id=%s", resp.JobID)
	if resp.ViewURL != want {
		t.Errorf("Expected view_url %q, got %q", want, resp.ViewURL)
	}

	req := httptest.NewRequest(http.MethodGet, "/view?id="+resp.JobID, nil)
	view := httptest.NewRecorder()
	router.ServeHTTP(view, req)

	if view.Code != http.StatusOK {
		t.Fatalf("Expected 200 from view, got %d", view.Code)
	}
	body := view.Body.String()
	if !strings.Contains(body, "^XA^XZ") {
		t.Error("Rendered page does not contain the submitted markup")
	}
	if !strings.Contains(body, "ws://localhost:8765") {
		t.Error("Rendered page does not embed the bridge address")
	}
	if !strings.Contains(body, resp.JobID) {
		t.Error("Rendered page does not mention the job id")
	}
}

func TestViewRendersItemsInOrder(t *testing.T) {
	router := newTestRouter(t)

	w := postJob(t, router, `{"data":[{"zpl":"^XA^FDalpha^XZ"},{"zpl":"^XA^FDbravo^XZ"},{"zpl":"^XA^FDcharlie^XZ"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		JobID string `json:"job_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	req := httptest.NewRequest(http.MethodGet, "/view?id="+resp.JobID, nil)
	view := httptest.NewRecorder()
	router.ServeHTTP(view, req)

	body := view.Body.String()
	prev := -1
	for _, marker := range []string{"alpha", "bravo", "charlie"} {
		idx := strings.Index(body, marker)
		if idx < 0 {
			t.Fatalf("Label %q missing from rendered page", marker)
		}
		if idx < prev {
			t.Errorf("Label %q rendered out of order", marker)
		}
		prev = idx
	}
}

func TestViewUnknownID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/view?id=not-a-real-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not-a-real-id") {
		t.Error("Error page does not mention the requested id")
	}
}

func TestViewMissingID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestCreateJobValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"data":`},
		{"missing data", `{}`},
		{"empty data", `{"data":[]}`},
		{"empty item", `{"data":[{}]}`},
		{"empty markup", `{"data":[{"zpl":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJob(t, router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	// None of the rejected submissions may have written anything.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "0 job(s) stored") {
		t.Error("Store size changed after rejected submissions")
	}
}

func TestGetJobAPI(t *testing.T) {
	router := newTestRouter(t)

	w := postJob(t, router, `{"data":[{"zpl":"^XA^XZ"}]}`)
	var resp struct {
		JobID string `json:"job_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	req := httptest.NewRequest(http.MethodGet, "/api/print-jobs/"+resp.JobID, nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)

	if get.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", get.Code)
	}
	var job struct {
		ID   string              `json:"id"`
		Data []map[string]string `json:"data"`
	}
	if err := json.Unmarshal(get.Body.Bytes(), &job); err != nil {
		t.Fatalf("Failed to parse job response: %v", err)
	}
	if job.ID != resp.JobID {
		t.Errorf("Expected id %s, got %s", resp.JobID, job.ID)
	}
	if len(job.Data) != 1 || job.Data[0]["zpl"] != "^XA^XZ" {
		t.Errorf("Unexpected job data: %+v", job.Data)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/print-jobs/unknown", nil)
	missing := httptest.NewRecorder()
	router.ServeHTTP(missing, req)
	if missing.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown job, got %d", missing.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}

func TestLandingPage(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Print Bridge") {
		t.Error("Landing page missing service name")
	}
}
