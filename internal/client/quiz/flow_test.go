package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/emotrack/emotrack-go/internal/assessment"
	"github.com/emotrack/emotrack-go/internal/client/nav"
	"github.com/emotrack/emotrack-go/internal/client/state"
)

type fakeView struct{}

func (fakeView) HideAll()             {}
func (fakeView) Reveal(nav.Page) bool { return true }
func (fakeView) SetAuthVisible(bool)  {}

type fakeHistory struct{ entries []nav.Entry }

func (h *fakeHistory) Push(e nav.Entry, url string) error {
	h.entries = append(h.entries, e)
	return nil
}

type fakeTimer struct {
	fn        func()
	cancelled bool
}

// fakeScheduler collects timers; fire runs everything still pending.
type fakeScheduler struct{ timers []*fakeTimer }

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &fakeTimer{fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled && t.fn != nil {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) fire() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		if !t.cancelled && t.fn != nil {
			fn := t.fn
			t.fn = nil
			fn()
		}
	}
}

type harness struct {
	flow      *Flow
	ctrl      *nav.Controller
	quiz      *state.Quiz
	sched     *fakeScheduler
	hist      *fakeHistory
	messages  []string
	restored  [][2]int
	submits   []assessment.Result
	submitErr error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	sess := &state.Session{}
	sess.Install(state.UserRef{ID: 1, Username: "maya"}, "tok")

	h := &harness{quiz: state.NewQuiz(), sched: &fakeScheduler{}, hist: &fakeHistory{}}
	h.ctrl = nav.NewController(fakeView{}, h.hist, sess)
	h.flow = NewFlow(h.ctrl, h.quiz, h.sched,
		func(res assessment.Result) error {
			h.submits = append(h.submits, res)
			return h.submitErr
		},
		func(msg string) { h.messages = append(h.messages, msg) },
		func(q, v int) { h.restored = append(h.restored, [2]int{q, v}) },
		nil,
	)
	return h
}

func TestStartResetsAndOpensFirstQuestion(t *testing.T) {
	h := newHarness(t)
	h.quiz.SetAnswer(3, 2)

	h.flow.Start()

	if h.ctrl.Current() != nav.QuestionPage(1) {
		t.Fatalf("current = %q", h.ctrl.Current())
	}
	if h.quiz.Answered() != 0 {
		t.Error("answers not cleared on start")
	}
}

func TestSelectAnswerSchedulesSingleAdvance(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()

	h.flow.SelectAnswer(1, 2)
	h.flow.SelectAnswer(1, 3) // reselect before the delay elapses

	if got := h.sched.pending(); got != 1 {
		t.Fatalf("pending advances = %d, want 1", got)
	}
	if v, _ := h.quiz.Answer(1); v != 3 {
		t.Errorf("answer = %d, want the reselected 3", v)
	}

	h.sched.fire()
	if h.ctrl.Current() != nav.QuestionPage(2) {
		t.Fatalf("current = %q, want question-2", h.ctrl.Current())
	}
}

func TestSelectAnswerOnLastQuestionDoesNotAdvance(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()
	h.ctrl.GoToPage(nav.QuestionPage(state.NumQuestions), true)
	h.sched.fire() // drain the restore hook, if any

	h.flow.SelectAnswer(state.NumQuestions, 1)

	if got := h.sched.pending(); got != 0 {
		t.Fatalf("pending advances = %d, want 0 on the last question", got)
	}
}

func TestManualNavigationCancelsPendingAdvance(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()
	h.flow.SelectAnswer(1, 2)

	h.flow.Retreat(2) // boundary no-op, but let's move forward manually
	h.flow.Advance(1)

	h.sched.fire()
	if h.ctrl.Current() != nav.QuestionPage(2) {
		t.Fatalf("current = %q, want question-2", h.ctrl.Current())
	}
	// The cancelled auto-advance must not have stacked a second move.
	if h.ctrl.Current() == nav.QuestionPage(3) {
		t.Error("cancelled advance still fired")
	}
}

func TestAdvanceRetreatBoundaries(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()

	h.flow.Retreat(1)
	if h.ctrl.Current() != nav.QuestionPage(1) {
		t.Fatalf("retreat at lower boundary moved to %q", h.ctrl.Current())
	}

	h.ctrl.GoToPage(nav.QuestionPage(state.NumQuestions), true)
	h.flow.Advance(state.NumQuestions)
	if h.ctrl.Current() != nav.QuestionPage(state.NumQuestions) {
		t.Fatalf("advance at upper boundary moved to %q", h.ctrl.Current())
	}
}

func TestEnteringAnsweredQuestionRestoresSelectionAsync(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()
	h.flow.SelectAnswer(1, 2)
	h.sched.fire() // auto-advance to question-2

	h.flow.Retreat(2)
	if len(h.restored) != 0 {
		t.Fatal("restore ran synchronously")
	}
	h.sched.fire()
	if len(h.restored) != 1 || h.restored[0] != [2]int{1, 2} {
		t.Fatalf("restored = %v, want [[1 2]]", h.restored)
	}
}

func TestEnteringQuestionnaireRootResets(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()
	h.flow.SelectAnswer(1, 3)

	h.ctrl.GoToPage(nav.PageQuestionnaire, true)

	if h.quiz.Answered() != 0 {
		t.Error("answers survived questionnaire reset")
	}
	if h.sched.pending() != 0 {
		t.Error("pending auto-advance survived questionnaire reset")
	}
}

func TestSubmitIncompleteReportsAndStays(t *testing.T) {
	h := newHarness(t)
	h.flow.Start()
	for q := 1; q <= 5; q++ {
		h.quiz.SetAnswer(q, 1)
	}

	err := h.flow.Submit()

	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
	if len(h.submits) != 0 {
		t.Error("incomplete submit reached the gateway")
	}
	if h.ctrl.Current() != nav.QuestionPage(1) {
		t.Errorf("navigated away on incomplete submit: %q", h.ctrl.Current())
	}
	if len(h.messages) == 0 {
		t.Error("no user-facing message on incomplete submit")
	}
}

func TestSubmitClassifiesAndNavigates(t *testing.T) {
	cases := []struct {
		value int
		want  assessment.Level
		score int
	}{
		{1, assessment.LevelLow, 7},
		{2, assessment.LevelModerate, 14},
		{3, assessment.LevelHigh, 21},
	}
	for _, tc := range cases {
		h := newHarness(t)
		h.flow.Start()
		for q := 1; q <= state.NumQuestions; q++ {
			h.quiz.SetAnswer(q, tc.value)
		}

		if err := h.flow.Submit(); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if len(h.submits) != 1 {
			t.Fatalf("submits = %d", len(h.submits))
		}
		if got := h.submits[0]; got.TotalScore != tc.score || got.Level != tc.want {
			t.Errorf("result = %+v, want score=%d level=%s", got, tc.score, tc.want)
		}
		if h.ctrl.Current() != nav.PageAnalysis {
			t.Errorf("current = %q, want analysis-page", h.ctrl.Current())
		}
	}
}

func TestSubmitFailureStillShowsResults(t *testing.T) {
	h := newHarness(t)
	h.submitErr = errors.New("backend down")
	h.flow.Start()
	for q := 1; q <= state.NumQuestions; q++ {
		h.quiz.SetAnswer(q, 1)
	}

	if err := h.flow.Submit(); err != nil {
		t.Fatalf("submit returned %v, gateway failure must not block", err)
	}
	if h.ctrl.Current() != nav.PageAnalysis {
		t.Errorf("current = %q, want analysis-page despite failed submission", h.ctrl.Current())
	}
}
