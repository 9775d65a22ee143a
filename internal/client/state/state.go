// Package state holds the client-side singletons: the authenticated
// session and the in-progress quiz answers. Both are owned by a single
// goroutine (the event loop driving the navigation controller), so they
// carry no locks.
package state

// NumQuestions is the fixed length of the stress questionnaire.
const NumQuestions = 7

// MaxOptionValue is the highest selectable value per question, so the
// total score domain is [0, NumQuestions*MaxOptionValue].
const MaxOptionValue = 3

// UserRef identifies the logged-in user as returned by the backend.
type UserRef struct {
	ID       int64
	Username string
	Name     string
}

// Session is the client-held proof of authentication. User and token are
// installed together and cleared together; one without the other is never
// a valid state.
type Session struct {
	user  *UserRef
	token string
	gen   uint64
}

// Install replaces the session identity. Bumps the generation so that
// in-flight fetches started under the previous identity discard their
// results.
func (s *Session) Install(u UserRef, token string) {
	if token == "" {
		return
	}
	cp := u
	s.user = &cp
	s.token = token
	s.gen++
}

// Clear drops the identity. Also a cancellation boundary: the generation
// changes.
func (s *Session) Clear() {
	s.user = nil
	s.token = ""
	s.gen++
}

// Authenticated reports whether both user and token are present.
func (s *Session) Authenticated() bool { return s.user != nil && s.token != "" }

// User returns the current user, or nil when logged out.
func (s *Session) User() *UserRef { return s.user }

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string { return s.token }

// Generation changes on every Install/Clear. Callers snapshot it before a
// network call and compare after, dropping responses that straddle a
// login/logout.
func (s *Session) Generation() uint64 { return s.gen }

// Quiz accumulates answers while the questionnaire is in progress.
// Keys are question ordinals 1..NumQuestions.
type Quiz struct {
	answers map[int]int
	index   int
}

// NewQuiz returns an empty quiz positioned at the first question.
func NewQuiz() *Quiz {
	return &Quiz{answers: map[int]int{}, index: 1}
}

// Reset clears all answers and rewinds to question 1.
func (q *Quiz) Reset() {
	q.answers = map[int]int{}
	q.index = 1
}

// SetAnswer records value for the given question. Out-of-range questions
// and values are ignored.
func (q *Quiz) SetAnswer(question, value int) {
	if question < 1 || question > NumQuestions {
		return
	}
	if value < 0 || value > MaxOptionValue {
		return
	}
	q.answers[question] = value
}

// Answer returns the recorded value for a question, if any.
func (q *Quiz) Answer(question int) (int, bool) {
	v, ok := q.answers[question]
	return v, ok
}

// Complete reports whether every question has an answer.
func (q *Quiz) Complete() bool { return len(q.answers) == NumQuestions }

// Answered returns how many questions have answers.
func (q *Quiz) Answered() int { return len(q.answers) }

// Total sums all recorded answer values.
func (q *Quiz) Total() int {
	sum := 0
	for _, v := range q.answers {
		sum += v
	}
	return sum
}

// Index is the ordinal of the question currently shown.
func (q *Quiz) Index() int { return q.index }

// SetIndex moves the current-question marker. Out-of-range ordinals are
// ignored.
func (q *Quiz) SetIndex(n int) {
	if n < 1 || n > NumQuestions {
		return
	}
	q.index = n
}
