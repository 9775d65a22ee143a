// Package nav implements the page-navigation controller: a state machine
// over the application's logical screens with access gating, browser-style
// history synchronization and per-page side effects.
package nav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emotrack/emotrack-go/internal/client/state"
)

// Page is a logical screen identifier. The set is closed; Parse rejects
// anything else.
type Page string

const (
	PageWelcome        Page = "welcome-page"
	PageLogin          Page = "login-page"
	PageSignup         Page = "signup-page"
	PageMain           Page = "main-page"
	PageQuestionnaire  Page = "questionnaire-page"
	PageAnalysis       Page = "analysis-page"
	PageReports        Page = "reports-page"
	PageAnalytics      Page = "analytics-page"
	PageManagementTips Page = "management-tips-page"
	PageConsultation   Page = "consultation-page"
)

// PageLanding is where unknown or blocked restored routes fall back to.
const PageLanding = PageWelcome

const questionPrefix = "question-"

// QuestionPage returns the page for the n-th question (1-based).
func QuestionPage(n int) Page {
	return Page(fmt.Sprintf("%s%d", questionPrefix, n))
}

// QuestionOrdinal reports whether p is a question page and, if so, its
// 1-based ordinal.
func QuestionOrdinal(p Page) (int, bool) {
	s, ok := strings.CutPrefix(string(p), questionPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > state.NumQuestions {
		return 0, false
	}
	return n, true
}

// Parse maps a raw identifier onto the known page set.
func Parse(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageWelcome, PageLogin, PageSignup, PageMain, PageQuestionnaire,
		PageAnalysis, PageReports, PageAnalytics, PageManagementTips,
		PageConsultation:
		return p, true
	default:
		if _, ok := QuestionOrdinal(p); ok {
			return p, true
		}
		return "", false
	}
}

// FromFragment derives a page from a URL fragment ("#reports-page" or
// "reports-page"). Unknown fragments resolve to the landing page.
func FromFragment(frag string) Page {
	frag = strings.TrimPrefix(strings.TrimSpace(frag), "#")
	if frag == "" || frag == "/" {
		return PageLanding
	}
	if p, ok := Parse(frag); ok {
		return p
	}
	return PageLanding
}

// URL returns the address mirrored into history for a page: "/" for the
// landing page, a fragment otherwise.
func (p Page) URL() string {
	if p == PageLanding {
		return "/"
	}
	return "#" + string(p)
}

// Gated reports whether the page requires an authenticated session.
// Everything past the auth screens is gated.
func (p Page) Gated() bool {
	switch p {
	case PageWelcome, PageLogin, PageSignup:
		return false
	}
	return true
}
