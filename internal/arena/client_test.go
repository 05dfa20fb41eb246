package arena

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carbonrobotics/arena-mcp-server/internal/credentials"
)

func testCreds() credentials.Credentials {
	return credentials.Credentials{Email: "eng@example.com", Password: "hunter2", WorkspaceID: 99}
}

// fakeArena stands in for the remote API: a login endpoint, a logout
// endpoint, and item resources that check the session header.
type fakeArena struct {
	srv     *httptest.Server
	logins  atomic.Int64
	logouts atomic.Int64
}

func newFakeArena(t *testing.T) *fakeArena {
	t.Helper()
	f := &fakeArena{}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Email       string `json:"email"`
			Password    string `json:"password"`
			WorkspaceID int64  `json:"workspaceId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Email != "eng@example.com" || req.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"invalid credentials"}]}`))
			return
		}
		time.Sleep(10 * time.Millisecond)
		f.logins.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"arenaSessionId": "SESSION123",
			"workspaceId":    req.WorkspaceID,
		})
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		f.logouts.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("arena_session_id") != "SESSION123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"guid": "ITEM1", "number": "900-00001", "name": "Motor"}]}`))
	})
	mux.HandleFunc("/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("arena_session_id") != "SESSION123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/items/ITEM1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"message":"item not found"}]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"guid": "ITEM1", "number": "900-00001", "name": "Motor"}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func TestLazyLoginThenSearch(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL, Credentials: testCreds()})

	if client.Authenticated() {
		t.Fatalf("no session expected before the first call")
	}

	env, err := client.SearchItems(context.Background(), ItemFilter{Name: "motor"}, Page{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if env.Count != 1 || len(env.Results) != 1 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if !client.Authenticated() {
		t.Fatalf("session expected after the first call")
	}
	if client.WorkspaceID() != 99 {
		t.Fatalf("workspace id: %d", client.WorkspaceID())
	}

	if _, err := client.SearchItems(context.Background(), ItemFilter{}, Page{}); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if n := f.logins.Load(); n != 1 {
		t.Fatalf("expected a single login, got %d", n)
	}
}

func TestMissingCredentials(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL})

	_, err := client.SearchItems(context.Background(), ItemFilter{}, Page{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if n := f.logins.Load(); n != 0 {
		t.Fatalf("no login attempt expected, got %d", n)
	}
}

func TestLoginRejected(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{
		BaseURL:     f.srv.URL,
		Credentials: credentials.Credentials{Email: "eng@example.com", Password: "wrong"},
	})

	_, err := client.SearchItems(context.Background(), ItemFilter{}, Page{})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected wrapped 401, got %v", err)
	}
	if client.Authenticated() {
		t.Fatalf("rejected login must not leave a session")
	}
}

func TestAPIErrorSurfaces(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL, Credentials: testCreds()})

	_, err := client.GetItem(context.Background(), "MISSING", false)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status: %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Fatalf("body should carry what the remote said")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL, Credentials: testCreds()})

	if _, err := client.SearchItems(context.Background(), ItemFilter{}, Page{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if client.Authenticated() {
		t.Fatalf("session must be gone after logout")
	}
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if n := f.logouts.Load(); n != 1 {
		t.Fatalf("logout must be remote-notified once, got %d", n)
	}

	if _, err := client.SearchItems(context.Background(), ItemFilter{}, Page{}); err != nil {
		t.Fatalf("search after logout: %v", err)
	}
	if n := f.logins.Load(); n != 2 {
		t.Fatalf("expected a fresh login after logout, got %d", n)
	}
}

func TestConcurrentLoginCollapses(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL, Credentials: testCreds()})

	start := make(chan struct{})
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = client.SearchItems(context.Background(), ItemFilter{}, Page{})
		}(i)
	}
	close(start)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if n := f.logins.Load(); n != 1 {
		t.Fatalf("concurrent callers must share one login, got %d", n)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	f := newFakeArena(t)
	client := NewClient(Config{BaseURL: f.srv.URL + "/", Credentials: testCreds()})

	if _, err := client.SearchItems(context.Background(), ItemFilter{}, Page{}); err != nil {
		t.Fatalf("search with trailing slash base: %v", err)
	}
}
