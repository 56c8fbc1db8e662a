package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/repolens/pkg/cache"
	apperrors "github.com/matzehuels/repolens/pkg/errors"
	"github.com/matzehuels/repolens/pkg/integrations/github"
	"github.com/matzehuels/repolens/pkg/repodata"
)

// newTestServer wires a Server to a fake GitHub API through the real client
// and service.
func newTestServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()
	gh := httptest.NewServer(upstream)
	t.Cleanup(gh.Close)

	client := github.NewClient("", github.WithBaseURL(gh.URL), github.WithHTTPClient(gh.Client()))
	logger := log.NewWithOptions(io.Discard, log.Options{})
	svc := repodata.New(client, cache.NewMemoryCache(), repodata.WithLogger(logger))

	srv := httptest.NewServer(New(svc, logger))
	t.Cleanup(srv.Close)
	return srv
}

func fakeGitHub(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/repos/octo/hello/readme":
		w.Write([]byte(`{"encoding":"base64","content":"aGVsbG8="}`))
	case "/repos/octo/hello/issues":
		w.Write([]byte(`[{"number":1,"title":"bug"},{"number":2,"title":"feature"}]`))
	case "/repos/octo/hello/pulls":
		w.Write([]byte(`[{"number":3,"title":"fix"}]`))
	case "/repos/octo/private/readme":
		w.WriteHeader(http.StatusUnauthorized)
	case "/repos/octo/limited/readme":
		w.WriteHeader(http.StatusForbidden)
	case "/repos/octo/broken/readme":
		w.WriteHeader(http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, fakeGitHub)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("GET /health = %d %v", resp.StatusCode, body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want uuid", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagated(t *testing.T) {
	srv := newTestServer(t, fakeGitHub)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}
}

func TestQuery(t *testing.T) {
	srv := newTestServer(t, fakeGitHub)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantAnswer string
		wantIssues int
	}{
		{"question only", `{"question":"what?"}`, http.StatusOK, "Summary for question: what?", -1},
		{"with repo", `{"question":"what?","repo":"octo/hello"}`, http.StatusOK, "Summary for question: what?", 2},
		{"repo url", `{"question":"q","repo":"https://github.com/octo/hello"}`, http.StatusOK, "Summary for question: q", 2},
		{"missing repo still answers", `{"question":"q","repo":"octo/missing"}`, http.StatusOK, "Summary for question: q", -1},
		{"empty question", `{"question":""}`, http.StatusBadRequest, "", -1},
		{"bad repo", `{"question":"q","repo":"nope"}`, http.StatusBadRequest, "", -1},
		{"bad json", `{`, http.StatusBadRequest, "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/query", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var e errorResponse
				json.NewDecoder(resp.Body).Decode(&e)
				if e.Code == "" || e.Error == "" {
					t.Errorf("error body = %+v, want code and message", e)
				}
				return
			}

			var body queryResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Answer != tt.wantAnswer {
				t.Errorf("answer = %q, want %q", body.Answer, tt.wantAnswer)
			}
			if len(body.Steps) != 4 || body.Steps[0] != "retrieving" || body.Steps[3] != "logging" {
				t.Errorf("steps = %v", body.Steps)
			}
			if body.ID == "" {
				t.Error("id is empty")
			}
			if tt.wantIssues >= 0 {
				if body.Context == nil || body.Context.OpenIssues != tt.wantIssues {
					t.Errorf("context = %+v, want %d issues", body.Context, tt.wantIssues)
				}
			} else if body.Context != nil {
				t.Errorf("context = %+v, want none", body.Context)
			}
		})
	}
}

func TestRepoRoutes(t *testing.T) {
	srv := newTestServer(t, fakeGitHub)

	resp, err := http.Get(srv.URL + "/repos/octo/hello/readme")
	if err != nil {
		t.Fatal(err)
	}
	var readme readmeResponse
	json.NewDecoder(resp.Body).Decode(&readme)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || readme.Readme != "hello" || readme.Repo != "octo/hello" {
		t.Errorf("readme = %d %+v", resp.StatusCode, readme)
	}

	for path, want := range map[string]int{"issues": 2, "pulls": 1} {
		resp, err := http.Get(srv.URL + "/repos/octo/hello/" + path)
		if err != nil {
			t.Fatal(err)
		}
		var records []github.Record
		json.NewDecoder(resp.Body).Decode(&records)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || len(records) != want {
			t.Errorf("%s = %d, %d records, want %d", path, resp.StatusCode, len(records), want)
		}
	}
}

func TestRepoErrors(t *testing.T) {
	srv := newTestServer(t, fakeGitHub)

	tests := []struct {
		path       string
		wantStatus int
		wantCode   apperrors.Code
	}{
		{"/repos/octo/private/readme", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized},
		{"/repos/octo/limited/readme", http.StatusForbidden, apperrors.ErrCodeForbidden},
		{"/repos/octo/missing/readme", http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"/repos/octo/broken/readme", http.StatusBadGateway, apperrors.ErrCodeUpstream},
		{"/repos/-bad/hello/readme", http.StatusBadRequest, apperrors.ErrCodeInvalidRepo},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			var body errorResponse
			json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != tt.wantStatus || body.Code != tt.wantCode {
				t.Errorf("GET %s = %d %s, want %d %s", tt.path, resp.StatusCode, body.Code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{apperrors.ErrCodeNetwork, http.StatusBadGateway},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(nil, log.NewWithOptions(io.Discard, log.Options{}))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
