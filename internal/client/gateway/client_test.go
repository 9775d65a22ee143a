package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emotrack/emotrack-go/internal/assessment"
)

func TestLoginDecodesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("anonymous call sent Authorization %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": 42, "username": "maya", "name": "Maya"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res, err := c.Login(context.Background(), "maya", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok-1" || res.User.ID != 42 || res.User.Name != "Maya" {
		t.Errorf("res = %+v", res)
	}
}

func TestBearerHeaderSentWhenTokenHeld(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]Report{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok-1" })
	if _, err := c.Reports(context.Background(), 42); err != nil {
		t.Fatalf("reports: %v", err)
	}
	if got != "Bearer tok-1" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestAPIErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username already exists", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	err := c.Signup(context.Background(), SignupRequest{Username: "maya"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != 400 || apiErr.Message != "username already exists" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestSubmitAssessmentBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok" })
	if err := c.SubmitAssessment(context.Background(), 42, assessment.NewResult(16)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if body["userId"] != float64(42) || body["totalStressScore"] != float64(16) || body["stressLevel"] != "High" {
		t.Errorf("body = %v", body)
	}
}

func TestAnalyticsMessageOnlyMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "No assessments found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok" })
	a, err := c.Analytics(context.Background(), 42)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if !a.Empty {
		t.Errorf("a = %+v, want Empty", a)
	}
}
