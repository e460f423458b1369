package mailrelay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testRequest() Request {
	return Request{
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "pub",
		Params:     map[string]string{"from_name": "Ada", "message": "hello world"},
	}
}

func TestClient_SendPostsPayload(t *testing.T) {
	t.Parallel()

	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type=%q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		fmt.Fprint(w, "OK")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.Send(context.Background(), testRequest()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := payload{
		ServiceID:      "svc",
		TemplateID:     "tpl",
		UserID:         "pub",
		TemplateParams: map[string]string{"from_name": "Ada", "message": "hello world"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_SendReportsStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "The Public Key is invalid\n")
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Send(context.Background(), testRequest())
	if !IsSendError(err) {
		t.Fatalf("expected SendError, got %v", err)
	}
	se := err.(*SendError)
	if se.Status != http.StatusBadRequest || se.Body != "The Public Key is invalid" {
		t.Fatalf("got %+v", se)
	}
}

func TestClient_SendRequiresConfiguration(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	r := testRequest()
	r.PublicKey = ""
	err := NewClient(srv.URL, nil).Send(context.Background(), r)
	if !IsNotConfigured(err) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if called {
		t.Fatalf("relay should not be contacted without configuration")
	}
}

func TestClient_SendHonorsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewClient(srv.URL, nil).Send(ctx, testRequest()); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestSendError_Message(t *testing.T) {
	t.Parallel()

	if got := (&SendError{Status: 500}).Error(); got != "mail relay error (status 500)" {
		t.Fatalf("got %q", got)
	}
	wrapped := fmt.Errorf("wrap: %w", &SendError{Status: 403, Body: "forbidden"})
	if !IsSendError(wrapped) {
		t.Fatalf("expected IsSendError for wrapped error")
	}
}
