// Package gateway is the REST client for the EmoTrack backend. All
// failures surface as errors at the call site; nothing here retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emotrack/emotrack-go/internal/assessment"
)

// APIError is a non-2xx backend response with its message body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// User mirrors the backend's user payload (password never included).
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name"`
	Age      int    `json:"age,omitempty"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignupRequest carries the registration fields.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
}

// Report is one stored assessment, newest first in listings.
type Report struct {
	ID               string           `json:"id"`
	AssessmentDate   time.Time        `json:"assessmentDate"`
	TotalStressScore int              `json:"totalStressScore"`
	StressLevel      assessment.Level `json:"stressLevel"`
	CopingStrategies string           `json:"copingStrategies,omitempty"`
}

// Analytics is the aggregate payload; Empty is true when the backend
// answered with a message-only body (no assessments yet).
type Analytics struct {
	Empty              bool                      `json:"-"`
	Message            string                    `json:"message,omitempty"`
	TotalAssessments   int                       `json:"totalAssessments"`
	AverageStressScore float64                   `json:"averageStressScore"`
	Distribution       map[assessment.Level]int  `json:"stressLevelDistribution"`
	WeeklyTrend        assessment.WeeklyTrend    `json:"weeklyTrend"`
	MonthlyComparison  assessment.MonthlyCompare `json:"monthlyComparison"`
	Insights           []string                  `json:"insights"`
	LatestAssessment   *Report                   `json:"latestAssessment,omitempty"`
}

// Client talks to one backend base URL. The token source is consulted per
// request; an empty token omits the Authorization header.
type Client struct {
	base  string
	http  *http.Client
	token func() string
}

// NewClient builds a gateway client. token may be nil for anonymous use.
func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		base:  strings.TrimSuffix(baseURL, "/"),
		http:  &http.Client{Timeout: 15 * time.Second},
		token: token,
	}
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"username": username, "password": password}, &out)
	return out, err
}

// Signup registers a new account. It does not authenticate.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/api/signup", req, nil)
}

// SubmitAssessment stores a finished questionnaire result.
func (c *Client) SubmitAssessment(ctx context.Context, userID int64, res assessment.Result) error {
	body := map[string]any{
		"userId":           userID,
		"totalStressScore": res.TotalScore,
		"stressLevel":      res.Level,
	}
	return c.do(ctx, http.MethodPost, "/api/stress-assessment", body, nil)
}

// Reports lists a user's assessments, newest first.
func (c *Client) Reports(ctx context.Context, userID int64) ([]Report, error) {
	var out []Report
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stress-reports/%d", userID), nil, &out)
	return out, err
}

// Analytics fetches the aggregate view. A message-only body (either
// spelling the backend uses for "nothing yet") comes back with Empty set
// rather than as an error.
func (c *Client) Analytics(ctx context.Context, userID int64) (Analytics, error) {
	var out Analytics
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stress-analytics/%d", userID), nil, &out); err != nil {
		return Analytics{}, err
	}
	if out.Message != "" && out.TotalAssessments == 0 {
		out.Empty = true
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
