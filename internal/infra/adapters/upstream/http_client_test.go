// File: internal/infra/adapters/upstream/http_client_test.go
package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"image-gateway/internal/domain/ports/adapter"
)

func TestClient_Submit(t *testing.T) {
	var gotPath, gotPrompt, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrompt = r.URL.Query().Get("prompt")
		gotModel = r.URL.Query().Get("model")
		w.Write([]byte(`{"ok":true,"task":"task-99","message":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	ack, err := c.Submit(context.Background(), "/submit/flux", "a red fox & friends", "flux-dev")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !ack.OK || ack.TaskHandle != "task-99" {
		t.Errorf("ack = %+v", ack)
	}
	if gotPath != "/submit/flux" {
		t.Errorf("path = %q", gotPath)
	}
	if gotPrompt != "a red fox & friends" {
		t.Errorf("prompt survived encoding as %q", gotPrompt)
	}
	if gotModel != "flux-dev" {
		t.Errorf("model = %q", gotModel)
	}
}

func TestClient_SubmitOmitsEmptyVariant(t *testing.T) {
	var hasModel bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasModel = r.URL.Query().Has("model")
		w.Write([]byte(`{"ok":true,"task":"t"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Submit(context.Background(), "/submit/turbo", "p", ""); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if hasModel {
		t.Error("model parameter sent for a single-variant provider")
	}
}

func TestClient_SubmitNon2xxIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	ack, err := c.Submit(context.Background(), "/submit/flux", "p", "")
	if err != nil {
		t.Fatalf("Submit() error = %v, http errors map to a rejected ack", err)
	}
	if ack.OK {
		t.Error("ack.OK = true for http 503")
	}
}

func TestClient_PollTaskID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" || r.URL.Query().Get("task") != "task-7" {
			t.Errorf("unexpected poll request %s", r.URL.String())
		}
		w.Write([]byte(`{"status":"done","url":"https://up.example/img.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res, err := c.Poll(context.Background(), "task-7")
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if res.Status != adapter.PollDone || res.URL != "https://up.example/img.png" {
		t.Errorf("result = %+v", res)
	}
}

func TestClient_PollAbsoluteURLHandle(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		if r.URL.Path != "/custom/status/abc" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient("http://unused.example", 5*time.Second)
	res, err := c.Poll(context.Background(), srv.URL+"/custom/status/abc")
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if !hit {
		t.Fatal("absolute handle did not reach its own host")
	}
	if res.Status != adapter.PollPending {
		t.Errorf("status = %v", res.Status)
	}
}

func TestClient_PollStatusMapping(t *testing.T) {
	cases := []struct {
		body string
		want adapter.PollStatus
	}{
		{`{"status":"done","url":"u"}`, adapter.PollDone},
		{`{"status":"error","message":"bad"}`, adapter.PollError},
		{`{"status":"pending"}`, adapter.PollPending},
		{`{"status":"queued"}`, adapter.PollPending}, // unknown states stay pending
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tc.body))
		}))
		c := NewClient(srv.URL, 5*time.Second)
		res, err := c.Poll(context.Background(), "t")
		srv.Close()
		if err != nil {
			t.Fatalf("Poll(%s) error = %v", tc.body, err)
		}
		if res.Status != tc.want {
			t.Errorf("Poll(%s) status = %v, want %v", tc.body, res.Status, tc.want)
		}
	}
}

func TestClient_PollNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Poll(context.Background(), "t"); err == nil {
		t.Fatal("expected a transport error for http 502")
	}
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	body, err := c.Fetch(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "image-bytes" {
		t.Errorf("body = %q", data)
	}
}

func TestClient_FetchNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	if _, err := c.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected an error for http 404")
	}
}
