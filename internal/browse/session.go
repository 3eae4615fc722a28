// Package browse implements the interactive result-browsing protocol for
// brute-force results, independent of any terminal I/O.
package browse

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/model"
)

// State is a browsing session state.
type State int

// Session states.
const (
	StateListing State = iota
	StateDetail
	StatePostAction
	StateExport
	StateDone
)

func (s State) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StateDetail:
		return "detail"
	case StatePostAction:
		return "post-action"
	case StateExport:
		return "export"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Action tells the caller what to do after a transition.
type Action int

// Actions emitted by Handle.
const (
	ActionNone Action = iota
	ActionShowDetail
	ActionExportMenu
	ActionCopy
	ActionSave
	ActionPrint
	ActionBack
	ActionCancel
	ActionInvalidIndex
	ActionUnknown
	ActionQuit
)

// Event describes the result of handling one input line.
type Event struct {
	Action    Action
	From      State
	To        State
	Candidate model.Candidate
	// Text is the payload for copy, save and print actions.
	Text string
}

// Session tracks the browsing state for one ranked result.
type Session struct {
	ranked   analysis.Ranked
	state    State
	selected int
}

// NewSession starts a session in the listing state.
func NewSession(ranked analysis.Ranked) *Session {
	return &Session{ranked: ranked, state: StateListing}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Ranked returns the list being browsed.
func (s *Session) Ranked() analysis.Ranked {
	return s.ranked
}

// Selected returns the 1-based index shown in detail, or 0.
func (s *Session) Selected() int {
	return s.selected
}

// Handle applies one line of user input.
func (s *Session) Handle(input string) Event {
	cmd := strings.ToLower(strings.TrimSpace(input))
	from := s.state
	var ev Event
	switch s.state {
	case StateListing:
		ev = s.handleListing(cmd)
	case StateDetail:
		ev = s.handleDetail(cmd)
	case StatePostAction:
		s.state = StateListing
		s.selected = 0
		ev = Event{Action: ActionBack}
	case StateExport:
		ev = s.handleExport(cmd)
	default:
		ev = Event{Action: ActionQuit}
	}
	ev.From = from
	ev.To = s.state
	return ev
}

func (s *Session) handleListing(cmd string) Event {
	switch cmd {
	case "", "q":
		s.state = StateDone
		return Event{Action: ActionQuit}
	case "a":
		s.state = StateExport
		return Event{Action: ActionExportMenu, Text: s.ranked.Export()}
	}
	if !isDigits(cmd) {
		return Event{Action: ActionUnknown}
	}
	n, err := strconv.Atoi(cmd)
	if err != nil {
		return Event{Action: ActionInvalidIndex}
	}
	c, ok := s.ranked.At(n)
	if !ok {
		return Event{Action: ActionInvalidIndex}
	}
	s.state = StateDetail
	s.selected = n
	return Event{Action: ActionShowDetail, Candidate: c, Text: c.Text}
}

func (s *Session) handleDetail(cmd string) Event {
	c, _ := s.ranked.At(s.selected)
	switch cmd {
	case "1", "c":
		s.state = StatePostAction
		return Event{Action: ActionCopy, Candidate: c, Text: c.Text}
	case "2", "s":
		s.state = StatePostAction
		return Event{Action: ActionSave, Candidate: c, Text: c.Text}
	default:
		s.state = StateListing
		s.selected = 0
		return Event{Action: ActionBack}
	}
}

func (s *Session) handleExport(cmd string) Event {
	s.state = StateListing
	text := s.ranked.Export()
	switch cmd {
	case "1", "c":
		return Event{Action: ActionCopy, Text: text}
	case "2", "s":
		return Event{Action: ActionSave, Text: text}
	case "3", "p":
		return Event{Action: ActionPrint, Text: text}
	default:
		return Event{Action: ActionCancel}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
