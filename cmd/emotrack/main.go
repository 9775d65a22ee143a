// Command emotrack is a line-based client for the EmoTrack backend. It
// drives the navigation/quiz core the way the browser UI does: every
// command is an event on a single loop, including expired timers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/emotrack/emotrack-go/internal/assessment"
	"github.com/emotrack/emotrack-go/internal/client/gateway"
	"github.com/emotrack/emotrack-go/internal/client/nav"
	"github.com/emotrack/emotrack-go/internal/client/quiz"
	"github.com/emotrack/emotrack-go/internal/client/session"
	"github.com/emotrack/emotrack-go/internal/client/state"
)

type termView struct{ authed bool }

func (v *termView) HideAll() {}

func (v *termView) Reveal(p nav.Page) bool {
	fmt.Printf("== %s ==\n", p)
	return true
}

func (v *termView) SetAuthVisible(authed bool) {
	if authed != v.authed {
		v.authed = authed
		if authed {
			fmt.Println("[logout available]")
		}
	}
}

// termHistory keeps a browser-like entry stack in memory.
type termHistory struct{ stack []nav.Entry }

func (h *termHistory) Push(e nav.Entry, url string) error {
	h.stack = append(h.stack, e)
	return nil
}

func (h *termHistory) Back() (*nav.Entry, bool) {
	if len(h.stack) < 2 {
		return nil, false
	}
	h.stack = h.stack[:len(h.stack)-1]
	e := h.stack[len(h.stack)-1]
	return &e, true
}

// loopScheduler posts timer callbacks back onto the main event loop so
// the core stays single-goroutine.
type loopScheduler struct{ events chan func() }

func (s *loopScheduler) AfterFunc(d time.Duration, fn func()) func() {
	cancelled := false
	t := time.AfterFunc(d, func() {
		s.events <- func() {
			if !cancelled {
				fn()
			}
		}
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

type app struct {
	ctx   context.Context
	ctrl  *nav.Controller
	hist  *termHistory
	flow  *quiz.Flow
	life  *session.Lifecycle
	quiz  *state.Quiz
	sched *loopScheduler
}

func main() {
	_ = godotenv.Load()
	base := os.Getenv("EMOTRACK_API")
	if base == "" {
		base = "http://localhost:8080"
	}

	sess := &state.Session{}
	qz := state.NewQuiz()
	sched := &loopScheduler{events: make(chan func(), 16)}
	hist := &termHistory{}
	ctrl := nav.NewController(&termView{}, hist, sess)

	ctx := context.Background()
	gw := gateway.NewClient(base, sess.Token)
	life := session.NewLifecycle(gw, sess, qz, ctrl,
		func(d session.Display) {
			fmt.Printf("[dashboard] name=%s last-checked=%s level=%s\n", d.Name, d.LastChecked, d.CurrentLevel)
		},
		func(msg string) { fmt.Println(msg) },
	)
	flow := quiz.NewFlow(ctrl, qz, sched,
		func(res assessment.Result) error { return life.SubmitResult(ctx, res) },
		func(msg string) { fmt.Println(msg) },
		func(q, v int) { fmt.Printf("[question %d] previously selected: %d\n", q, v) },
		func(can bool) {
			if can {
				fmt.Println("[all questions answered - submit enabled]")
			}
		},
	)

	a := &app{ctx: ctx, ctrl: ctrl, hist: hist, flow: flow, life: life, quiz: qz, sched: sched}
	a.run()
}

func (a *app) run() {
	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	a.ctrl.Init(os.Getenv("EMOTRACK_FRAGMENT"))
	fmt.Println("type 'help' for commands")

	for {
		select {
		case fn := <-a.sched.events:
			fn()
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !a.dispatch(strings.Fields(line)) {
				return
			}
		}
	}
}

func (a *app) dispatch(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "quit", "exit":
		return false
	case "help":
		fmt.Println("commands: go <page> | back | login <user> <pass> | signup <user> <email> <pass> <name> <age> | start | answer <0-3> | next | prev | submit | logout | quit")
	case "go":
		if len(args) != 2 {
			fmt.Println("usage: go <page>")
			break
		}
		a.ctrl.GoToPage(nav.FromFragment(args[1]), true)
	case "back":
		if e, ok := a.hist.Back(); ok {
			a.ctrl.Restore(e, "")
		}
	case "login":
		if len(args) != 3 {
			fmt.Println("usage: login <user> <pass>")
			break
		}
		_ = a.life.Login(a.ctx, args[1], args[2])
	case "signup":
		if len(args) != 6 {
			fmt.Println("usage: signup <user> <email> <pass> <name> <age>")
			break
		}
		age, _ := strconv.Atoi(args[5])
		_ = a.life.Signup(a.ctx, gateway.SignupRequest{
			Username: args[1], Email: args[2], Password: args[3], Name: args[4], Age: age,
		})
	case "logout":
		a.life.Logout()
	case "start":
		a.flow.Start()
	case "answer":
		if len(args) != 2 {
			fmt.Println("usage: answer <0-3>")
			break
		}
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 || v > state.MaxOptionValue {
			fmt.Println("answer must be 0-3")
			break
		}
		a.flow.SelectAnswer(a.quiz.Index(), v)
	case "next":
		a.flow.Advance(a.quiz.Index())
	case "prev":
		a.flow.Retreat(a.quiz.Index())
	case "submit":
		_ = a.flow.Submit()
	default:
		fmt.Println("unknown command; try 'help'")
	}
	return true
}
