package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/cipher"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	ranked := analysis.BruteForce(cipher.Encrypt("meet me at the park and bring the map", 4))
	require.Len(t, ranked, 25)
	return NewSession(ranked)
}

func TestSessionSelectShowsDetail(t *testing.T) {
	s := newTestSession(t)
	ev := s.Handle(" 1 ")
	assert.Equal(t, ActionShowDetail, ev.Action)
	assert.Equal(t, StateListing, ev.From)
	assert.Equal(t, StateDetail, ev.To)
	assert.Equal(t, 4, ev.Candidate.Key)
	assert.Equal(t, "meet me at the park and bring the map", ev.Text)
	assert.Equal(t, 1, s.Selected())
}

func TestSessionSelectLastIndex(t *testing.T) {
	s := newTestSession(t)
	ev := s.Handle("25")
	require.Equal(t, ActionShowDetail, ev.Action)
	assert.Equal(t, s.Ranked()[24], ev.Candidate)
}

func TestSessionInvalidSelectionKeepsState(t *testing.T) {
	for _, input := range []string{"0", "26", "100"} {
		s := newTestSession(t)
		ev := s.Handle(input)
		assert.Equal(t, ActionInvalidIndex, ev.Action, input)
		assert.Equal(t, StateListing, s.State(), input)
	}
	for _, input := range []string{"x", "-1", "+2", "1.5", "help"} {
		s := newTestSession(t)
		ev := s.Handle(input)
		assert.Equal(t, ActionUnknown, ev.Action, input)
		assert.Equal(t, StateListing, s.State(), input)
	}
}

func TestSessionQuit(t *testing.T) {
	for _, input := range []string{"q", "Q", "", "   "} {
		s := newTestSession(t)
		ev := s.Handle(input)
		assert.Equal(t, ActionQuit, ev.Action)
		assert.Equal(t, StateDone, s.State())
		assert.Equal(t, ActionQuit, s.Handle("1").Action, "done is terminal")
	}
}

func TestSessionDetailActions(t *testing.T) {
	t.Run("copy then continue", func(t *testing.T) {
		s := newTestSession(t)
		s.Handle("2")
		ev := s.Handle("c")
		assert.Equal(t, ActionCopy, ev.Action)
		assert.Equal(t, s.Ranked()[1].Text, ev.Text)
		assert.Equal(t, StatePostAction, s.State())
		ev = s.Handle("")
		assert.Equal(t, ActionBack, ev.Action)
		assert.Equal(t, StateListing, s.State())
		assert.Equal(t, 0, s.Selected())
	})
	t.Run("save", func(t *testing.T) {
		s := newTestSession(t)
		s.Handle("3")
		ev := s.Handle("2")
		assert.Equal(t, ActionSave, ev.Action)
		assert.Equal(t, s.Ranked()[2], ev.Candidate)
	})
	t.Run("back", func(t *testing.T) {
		s := newTestSession(t)
		s.Handle("3")
		ev := s.Handle("")
		assert.Equal(t, ActionBack, ev.Action)
		assert.Equal(t, StateListing, s.State())
	})
}

func TestSessionExport(t *testing.T) {
	cases := map[string]Action{
		"1": ActionCopy,
		"c": ActionCopy,
		"2": ActionSave,
		"3": ActionPrint,
		"p": ActionPrint,
		"q": ActionCancel,
		"":  ActionCancel,
	}
	for input, want := range cases {
		s := newTestSession(t)
		ev := s.Handle("a")
		require.Equal(t, ActionExportMenu, ev.Action)
		require.Equal(t, StateExport, s.State())
		require.Equal(t, s.Ranked().Export(), ev.Text)

		ev = s.Handle(input)
		assert.Equal(t, want, ev.Action, input)
		assert.Equal(t, StateListing, s.State(), input)
		if want != ActionCancel {
			assert.Equal(t, s.Ranked().Export(), ev.Text, input)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "listing", StateListing.String())
	assert.Equal(t, "post-action", StatePostAction.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestListingDigitsOnlySelection(t *testing.T) {
	s := newTestSession(t)

	for _, input := range []string{"+1", "-0", "1e1", "0x1", "١"} {
		ev := s.Handle(input)
		assert.Equal(t, ActionUnknown, ev.Action, input)
		assert.Equal(t, StateListing, s.State(), input)
	}

	ev := s.Handle("99999999999999999999999")
	assert.Equal(t, ActionInvalidIndex, ev.Action)
	assert.Equal(t, StateListing, s.State())

	ev = s.Handle(" 07 ")
	require.Equal(t, ActionShowDetail, ev.Action)
	assert.Equal(t, 7, s.Selected())
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0"))
	assert.True(t, isDigits("25"))
	for _, s := range []string{"", "+1", "-1", "1.0", " 1", "a1"} {
		assert.False(t, isDigits(s), s)
	}
}
