package nav

import (
	"time"

	"github.com/emotrack/emotrack-go/internal/client/state"
)

// View is the rendering layer seen from the controller. Reveal reports
// whether a view exists for the page; when it does not, the transition
// still completes (current page and history update) with nothing shown.
type View interface {
	HideAll()
	Reveal(p Page) bool
	// SetAuthVisible toggles the logout affordance.
	SetAuthVisible(authed bool)
}

// History mirrors the browser navigation stack. Push errors are swallowed
// by the controller: failing to record history never blocks a transition.
type History interface {
	Push(e Entry, url string) error
}

// Entry is one recorded transition.
type Entry struct {
	Page Page
	Time time.Time
}

// Scheduler defers work. Implementations must deliver fn on the same
// goroutine that drives the controller; the returned func cancels the
// pending call if it has not fired yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Controller owns the current page. It is the only writer of view
// visibility.
type Controller struct {
	view    View
	history History
	session *state.Session
	now     func() time.Time

	current     Page
	redirecting bool
	effects     []func(Page)
}

// NewController returns a controller with no current page; call Init to
// enter the first one.
func NewController(view View, history History, session *state.Session) *Controller {
	return &Controller{
		view:    view,
		history: history,
		session: session,
		now:     time.Now,
	}
}

// Current returns the page last entered, or "" before Init.
func (c *Controller) Current() Page { return c.current }

// OnEnter registers a side-effect hook invoked after each completed
// transition, strictly after the view is revealed and history recorded.
func (c *Controller) OnEnter(fn func(Page)) {
	c.effects = append(c.effects, fn)
}

// GoToPage transitions to target. Re-entering the current page is a
// no-op. Blocked targets redirect once to the login page; the redirect
// itself going through the gate again is cut off so a blocked login page
// cannot loop.
func (c *Controller) GoToPage(target Page, recordHistory bool) {
	if target == c.current {
		return
	}
	if !CanAccess(target, c.session) {
		if c.redirecting {
			return
		}
		c.redirecting = true
		c.GoToPage(PageLogin, true)
		c.redirecting = false
		return
	}

	c.view.HideAll()
	c.view.Reveal(target) // missing view: defined degenerate case, state still advances
	c.current = target

	if recordHistory {
		_ = c.history.Push(Entry{Page: target, Time: c.now()}, target.URL())
	}

	c.view.SetAuthVisible(c.session.Authenticated())
	for _, fn := range c.effects {
		fn(target)
	}
}

// Restore re-enters a page popped from history without recording a new
// entry. When no entry state survived (the user edited the fragment by
// hand), the target is derived from the fragment and re-validated; a
// blocked or unknown target falls back to the landing page instead of
// redirecting to login. That asymmetry with GoToPage is deliberate:
// a forward click is an intent to proceed, a restore is not.
func (c *Controller) Restore(e *Entry, fragment string) {
	if e != nil {
		c.GoToPage(e.Page, false)
		return
	}
	target := FromFragment(fragment)
	if !CanAccess(target, c.session) {
		target = PageLanding
	}
	c.GoToPage(target, false)
}

// Init derives the startup page the same way as a history pop with no
// entry state.
func (c *Controller) Init(fragment string) {
	c.Restore(nil, fragment)
}
