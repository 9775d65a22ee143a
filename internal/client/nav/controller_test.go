package nav

import (
	"errors"
	"testing"

	"github.com/emotrack/emotrack-go/internal/client/state"
)

type fakeView struct {
	hides    int
	revealed []Page
	missing  map[Page]bool
	authed   bool
}

func (v *fakeView) HideAll() { v.hides++ }

func (v *fakeView) Reveal(p Page) bool {
	v.revealed = append(v.revealed, p)
	return !v.missing[p]
}

func (v *fakeView) SetAuthVisible(authed bool) { v.authed = authed }

type fakeHistory struct {
	entries []Entry
	urls    []string
	err     error
}

func (h *fakeHistory) Push(e Entry, url string) error {
	if h.err != nil {
		return h.err
	}
	h.entries = append(h.entries, e)
	h.urls = append(h.urls, url)
	return nil
}

func authedSession() *state.Session {
	s := &state.Session{}
	s.Install(state.UserRef{ID: 1, Username: "maya"}, "tok")
	return s
}

func newTestController(sess *state.Session) (*Controller, *fakeView, *fakeHistory) {
	v := &fakeView{missing: map[Page]bool{}}
	h := &fakeHistory{}
	return NewController(v, h, sess), v, h
}

func TestGoToPageRecordsHistoryAfterReveal(t *testing.T) {
	c, v, h := newTestController(authedSession())

	c.GoToPage(PageMain, true)

	if c.Current() != PageMain {
		t.Fatalf("current = %q, want main-page", c.Current())
	}
	if len(v.revealed) != 1 || v.revealed[0] != PageMain {
		t.Fatalf("revealed = %v", v.revealed)
	}
	if len(h.entries) != 1 || h.entries[0].Page != PageMain {
		t.Fatalf("history = %v", h.entries)
	}
	if h.urls[0] != "#main-page" {
		t.Fatalf("url = %q", h.urls[0])
	}
	if h.entries[0].Time.IsZero() {
		t.Error("history entry missing timestamp")
	}
}

func TestGoToPageIdempotentReentry(t *testing.T) {
	c, v, h := newTestController(authedSession())
	effects := 0
	c.OnEnter(func(Page) { effects++ })

	c.GoToPage(PageMain, true)
	c.GoToPage(PageMain, true)

	if len(h.entries) != 1 {
		t.Errorf("duplicate history entries: %v", h.entries)
	}
	if effects != 1 {
		t.Errorf("effects ran %d times, want 1", effects)
	}
	if v.hides != 1 {
		t.Errorf("hides = %d, want 1", v.hides)
	}
}

func TestBlockedForwardNavigationRedirectsToLogin(t *testing.T) {
	c, v, h := newTestController(&state.Session{})

	c.GoToPage(PageReports, true)

	if c.Current() != PageLogin {
		t.Fatalf("current = %q, want login-page", c.Current())
	}
	// The reports view must never have been revealed.
	for _, p := range v.revealed {
		if p == PageReports {
			t.Error("blocked page was revealed")
		}
	}
	// The redirect records exactly one history entry, for the login page.
	if len(h.entries) != 1 || h.entries[0].Page != PageLogin {
		t.Fatalf("history = %v", h.entries)
	}
}

func TestBlockedNavigationFromLoginIsNoop(t *testing.T) {
	c, _, h := newTestController(&state.Session{})
	c.GoToPage(PageLogin, true)
	before := len(h.entries)

	// Already on login; the redirect target equals the current page, so
	// nothing loops or re-records.
	c.GoToPage(PageAnalytics, true)

	if c.Current() != PageLogin {
		t.Fatalf("current = %q", c.Current())
	}
	if len(h.entries) != before {
		t.Errorf("history grew: %v", h.entries)
	}
}

func TestMissingViewStillAdvancesState(t *testing.T) {
	c, v, h := newTestController(authedSession())
	v.missing[PageConsultation] = true

	c.GoToPage(PageConsultation, true)

	if c.Current() != PageConsultation {
		t.Fatalf("current = %q, want consultation-page", c.Current())
	}
	if len(h.entries) != 1 {
		t.Fatalf("history = %v", h.entries)
	}
}

func TestHistoryPushFailureIsSwallowed(t *testing.T) {
	c, _, h := newTestController(authedSession())
	h.err = errors.New("pushState denied")

	c.GoToPage(PageMain, true)

	if c.Current() != PageMain {
		t.Fatalf("current = %q, push failure must not block navigation", c.Current())
	}
}

func TestLandingPageURLIsRoot(t *testing.T) {
	c, _, h := newTestController(authedSession())
	c.GoToPage(PageMain, true)
	c.GoToPage(PageWelcome, true)
	if h.urls[1] != "/" {
		t.Errorf("landing url = %q, want /", h.urls[1])
	}
}

func TestRestoreEntryDoesNotRecordHistory(t *testing.T) {
	c, _, h := newTestController(authedSession())
	c.GoToPage(PageMain, true)
	c.GoToPage(PageReports, true)

	c.Restore(&Entry{Page: PageMain}, "")

	if c.Current() != PageMain {
		t.Fatalf("current = %q, want main-page", c.Current())
	}
	if len(h.entries) != 2 {
		t.Errorf("restore recorded history: %v", h.entries)
	}
}

func TestRestoreBlockedFragmentFallsBackToLanding(t *testing.T) {
	// Asymmetry with forward navigation: a blocked typed/restored route
	// lands on welcome, not login.
	c, _, _ := newTestController(&state.Session{})

	c.Restore(nil, "#reports-page")

	if c.Current() != PageWelcome {
		t.Fatalf("current = %q, want welcome-page", c.Current())
	}
}

func TestInitDerivesPageFromFragment(t *testing.T) {
	c, _, _ := newTestController(authedSession())
	c.Init("#analytics-page")
	if c.Current() != PageAnalytics {
		t.Fatalf("current = %q, want analytics-page", c.Current())
	}

	c2, _, _ := newTestController(&state.Session{})
	c2.Init("#garbage")
	if c2.Current() != PageWelcome {
		t.Fatalf("current = %q, want welcome-page", c2.Current())
	}
}

func TestAuthAffordanceTracksSession(t *testing.T) {
	sess := authedSession()
	c, v, _ := newTestController(sess)

	c.GoToPage(PageMain, true)
	if !v.authed {
		t.Error("logout affordance hidden while authenticated")
	}

	sess.Clear()
	c.GoToPage(PageLogin, true)
	if v.authed {
		t.Error("logout affordance shown while logged out")
	}
}
