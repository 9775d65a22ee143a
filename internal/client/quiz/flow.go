// Package quiz sequences the questionnaire: one linear pass over
// question-1..question-7 with answer recording, a debounced auto-advance
// and a guarded submit.
package quiz

import (
	"errors"
	"log"
	"time"

	"github.com/emotrack/emotrack-go/internal/assessment"
	"github.com/emotrack/emotrack-go/internal/client/nav"
	"github.com/emotrack/emotrack-go/internal/client/state"
)

// ErrIncomplete is returned by Submit while answers are missing.
var ErrIncomplete = errors.New("questionnaire incomplete")

// DefaultAutoAdvance is the pause between selecting an answer and moving
// to the next question.
const DefaultAutoAdvance = 700 * time.Millisecond

// SubmitFunc hands a finished result to assessment submission. Errors are
// logged, never blocking: the flow proceeds to the results page anyway.
type SubmitFunc func(assessment.Result) error

// Flow drives the quiz on top of the navigation controller.
type Flow struct {
	nav   *nav.Controller
	quiz  *state.Quiz
	sched nav.Scheduler

	submit  SubmitFunc
	report  func(msg string)      // user-facing errors
	restore func(question, v int) // reapply "selected" visual state
	onReady func(canSubmit bool)  // submission enablement

	autoAdvance   time.Duration
	cancelAdvance func()
}

// NewFlow wires a quiz flow and registers its page side effects on the
// controller. report, restore and onReady may be nil.
func NewFlow(ctrl *nav.Controller, quiz *state.Quiz, sched nav.Scheduler, submit SubmitFunc,
	report func(string), restore func(int, int), onReady func(bool)) *Flow {
	f := &Flow{
		nav:         ctrl,
		quiz:        quiz,
		sched:       sched,
		submit:      submit,
		report:      report,
		restore:     restore,
		onReady:     onReady,
		autoAdvance: DefaultAutoAdvance,
	}
	ctrl.OnEnter(f.pageEntered)
	return f
}

// SetAutoAdvance overrides the selection-to-advance delay.
func (f *Flow) SetAutoAdvance(d time.Duration) { f.autoAdvance = d }

// Start clears any prior answers and opens the first question.
func (f *Flow) Start() {
	f.quiz.Reset()
	f.notifyReady()
	f.nav.GoToPage(nav.QuestionPage(1), true)
}

// SelectAnswer records value for a question and schedules the advance to
// the next one. At most one advance is ever pending: reselecting before
// the delay elapses replaces the earlier timer.
func (f *Flow) SelectAnswer(question, value int) {
	if question < 1 || question > state.NumQuestions {
		return
	}
	f.quiz.SetAnswer(question, value)
	f.notifyReady()

	f.cancelPending()
	if question < state.NumQuestions {
		f.cancelAdvance = f.sched.AfterFunc(f.autoAdvance, func() {
			f.cancelAdvance = nil
			f.Advance(question)
		})
	}
}

// Advance moves from question n to n+1; a no-op on the last question.
func (f *Flow) Advance(n int) {
	if n < 1 || n >= state.NumQuestions {
		return
	}
	f.nav.GoToPage(nav.QuestionPage(n+1), true)
}

// Retreat moves from question n to n-1; a no-op on the first question.
func (f *Flow) Retreat(n int) {
	if n <= 1 || n > state.NumQuestions {
		return
	}
	f.nav.GoToPage(nav.QuestionPage(n-1), true)
}

// CanSubmit reports whether all questions are answered.
func (f *Flow) CanSubmit() bool { return f.quiz.Complete() }

// Submit classifies the completed answer set, hands it off for
// submission and navigates to the results page. An incomplete answer set
// reports to the user and stays put; a failed submission is logged and
// does not block the results page.
func (f *Flow) Submit() error {
	if !f.quiz.Complete() {
		f.tell("Please answer all questions")
		return ErrIncomplete
	}
	res := assessment.NewResult(f.quiz.Total())
	if f.submit != nil {
		if err := f.submit(res); err != nil {
			log.Printf("quiz: assessment submission failed: %v", err)
		}
	}
	f.nav.GoToPage(nav.PageAnalysis, true)
	return nil
}

// pageEntered is the controller's side-effect hook.
func (f *Flow) pageEntered(p nav.Page) {
	switch {
	case p == nav.PageQuestionnaire:
		// Entering the quiz root resets the form and state.
		f.cancelPending()
		f.quiz.Reset()
		f.notifyReady()
	default:
		n, ok := nav.QuestionOrdinal(p)
		if !ok {
			return
		}
		f.cancelPending() // manual navigation drops a pending auto-advance
		f.quiz.SetIndex(n)
		if v, answered := f.quiz.Answer(n); answered && f.restore != nil {
			// Scheduled, not synchronous: runs after the view is visible.
			f.sched.AfterFunc(0, func() { f.restore(n, v) })
		}
	}
}

func (f *Flow) cancelPending() {
	if f.cancelAdvance != nil {
		f.cancelAdvance()
		f.cancelAdvance = nil
	}
}

func (f *Flow) notifyReady() {
	if f.onReady != nil {
		f.onReady(f.quiz.Complete())
	}
}

func (f *Flow) tell(msg string) {
	if f.report != nil {
		f.report(msg)
	}
}
