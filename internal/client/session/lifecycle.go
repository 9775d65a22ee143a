// Package session drives the login/logout/signup lifecycle and the
// dashboard display fields derived from it.
package session

import (
	"context"
	"errors"
	"log"

	"github.com/emotrack/emotrack-go/internal/assessment"
	"github.com/emotrack/emotrack-go/internal/client/gateway"
	"github.com/emotrack/emotrack-go/internal/client/nav"
	"github.com/emotrack/emotrack-go/internal/client/state"
)

// ErrMissingFields is the local validation failure: nothing was sent to
// the backend.
var ErrMissingFields = errors.New("missing required fields")

// Display defaults. Logout resets to these so a later user on the same
// device never sees the previous user's data.
const (
	DefaultLastChecked = "Never"
	DefaultLevel       = "--"
)

// Display holds the user-specific dashboard fields.
type Display struct {
	Name         string
	LastChecked  string
	CurrentLevel string
}

func defaultDisplay() Display {
	return Display{LastChecked: DefaultLastChecked, CurrentLevel: DefaultLevel}
}

// Gateway is the backend surface the lifecycle needs. *gateway.Client
// implements it.
type Gateway interface {
	Login(ctx context.Context, username, password string) (gateway.LoginResponse, error)
	Signup(ctx context.Context, req gateway.SignupRequest) error
	SubmitAssessment(ctx context.Context, userID int64, res assessment.Result) error
	Reports(ctx context.Context, userID int64) ([]gateway.Report, error)
}

// Lifecycle owns the Session container. It is the only component that
// installs or clears it.
type Lifecycle struct {
	gw   Gateway
	sess *state.Session
	quiz *state.Quiz
	nav  *nav.Controller

	display   Display
	onDisplay func(Display)
	report    func(msg string)
}

// NewLifecycle wires the session lifecycle. onDisplay and report may be
// nil.
func NewLifecycle(gw Gateway, sess *state.Session, quiz *state.Quiz,
	ctrl *nav.Controller, onDisplay func(Display), report func(string)) *Lifecycle {
	l := &Lifecycle{
		gw:        gw,
		sess:      sess,
		quiz:      quiz,
		nav:       ctrl,
		display:   defaultDisplay(),
		onDisplay: onDisplay,
		report:    report,
	}
	return l
}

// Display returns the current dashboard fields.
func (l *Lifecycle) Display() Display { return l.display }

// Login authenticates, installs the session, opens the dashboard and
// best-effort populates the last-checked fields. Having no prior
// assessments is a valid state rendered as defaults.
func (l *Lifecycle) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		l.tell("Please enter both username and password")
		return ErrMissingFields
	}
	res, err := l.gw.Login(ctx, username, password)
	if err != nil {
		l.tellFailure("Login failed", err)
		return err
	}
	l.sess.Install(state.UserRef{
		ID:       res.User.ID,
		Username: res.User.Username,
		Name:     res.User.Name,
	}, res.Token)

	l.display = defaultDisplay()
	l.display.Name = res.User.Name
	if l.display.Name == "" {
		l.display.Name = res.User.Username
	}
	l.pushDisplay()

	l.nav.GoToPage(nav.PageMain, true)
	l.RefreshDashboard(ctx)
	return nil
}

// Logout clears the session, the quiz answers and every cached display
// field, then returns to the login page. It is also the cancellation
// boundary for in-flight dashboard fetches.
func (l *Lifecycle) Logout() {
	l.sess.Clear()
	l.quiz.Reset()
	l.display = defaultDisplay()
	l.pushDisplay()
	l.nav.GoToPage(nav.PageLogin, true)
}

// Signup registers a new account and returns to the login page without
// authenticating.
func (l *Lifecycle) Signup(ctx context.Context, req gateway.SignupRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" || req.Age == 0 {
		l.tell("Please fill in all fields")
		return ErrMissingFields
	}
	if err := l.gw.Signup(ctx, req); err != nil {
		l.tellFailure("Signup failed", err)
		return err
	}
	l.tell("Signup successful! Please login.")
	l.nav.GoToPage(nav.PageLogin, true)
	return nil
}

// SubmitResult stores a finished questionnaire and refreshes the
// dashboard fields from the newest report.
func (l *Lifecycle) SubmitResult(ctx context.Context, res assessment.Result) error {
	u := l.sess.User()
	if u == nil {
		return errors.New("no user logged in")
	}
	if err := l.gw.SubmitAssessment(ctx, u.ID, res); err != nil {
		return err
	}
	l.RefreshDashboard(ctx)
	return nil
}

// RefreshDashboard fetches the newest report and updates the
// last-checked/current-level fields. Results are discarded when the
// session identity changed while the request was in flight; failures are
// logged, not surfaced.
func (l *Lifecycle) RefreshDashboard(ctx context.Context) {
	u := l.sess.User()
	if u == nil {
		return
	}
	gen := l.sess.Generation()
	reports, err := l.gw.Reports(ctx, u.ID)
	if err != nil {
		log.Printf("session: fetching last checked time: %v", err)
		return
	}
	if gen != l.sess.Generation() {
		return // logged out (or re-logged) while the request was in flight
	}
	if len(reports) == 0 {
		return
	}
	last := reports[0]
	l.display.LastChecked = last.AssessmentDate.Local().Format("Jan 2, 2006 3:04 PM")
	l.display.CurrentLevel = string(last.StressLevel)
	l.pushDisplay()
}

func (l *Lifecycle) pushDisplay() {
	if l.onDisplay != nil {
		l.onDisplay(l.display)
	}
}

func (l *Lifecycle) tell(msg string) {
	if l.report != nil {
		l.report(msg)
	}
}

func (l *Lifecycle) tellFailure(prefix string, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		l.tell(prefix + ": " + apiErr.Message)
		return
	}
	log.Printf("session: %s: %v", prefix, err)
	l.tell("An error occurred. Please try again.")
}
