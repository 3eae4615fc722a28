package tui

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/browse"
	"github.com/verte-zerg/caesar/internal/model"
	"github.com/verte-zerg/caesar/internal/report"
)

// startBrute launches the computation. Results from a cancelled run are
// ignored via bruteSeq, so the caller sees all candidates or none.
func (m *Model) startBrute() tea.Cmd {
	m.stopBrute()
	m.bruteSeq++
	seq := m.bruteSeq
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelBrute = cancel
	text := m.text
	m.logger.Debug("brute-force started", "chars", utf8.RuneCountInString(text))
	run := func() tea.Msg {
		ranked, err := analysis.BruteForceContext(ctx, text)
		return bruteDoneMsg{seq: seq, ranked: ranked, err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m *Model) stopBrute() {
	if m.cancelBrute != nil {
		m.cancelBrute()
		m.cancelBrute = nil
	}
}

func (m *Model) updateWorking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.String() == "q" {
		m.stopBrute()
		m.bruteSeq++
		m.setError("Brute-force cancelled.")
		return m.toMenu()
	}
	return m, nil
}

func (m *Model) handleBruteDone(msg bruteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.bruteSeq || m.screen != screenWorking {
		return m, nil
	}
	m.stopBrute()
	if msg.err != nil {
		m.setError(fmt.Sprintf("Brute-force failed: %v", msg.err))
		return m.toMenu()
	}
	m.session = browse.NewSession(msg.ranked)
	m.table.SetRows(bruteRows(msg.ranked, m.cfg.PreviewWidth))
	m.table.SetCursor(0)
	m.showDetail = false
	m.screen = screenBrute
	m.clearStatus()
	m.configureInput("> ", "")
	if best, ok := msg.ranked.Best(); ok {
		m.logger.Debug("brute-force finished", "best_key", best.Key, "best_score", best.Score)
		m.record(model.Run{
			Mode:       model.ModeBrute,
			InputChars: utf8.RuneCountInString(m.text),
			BestKey:    best.Key,
			BestScore:  best.Score,
		})
	}
	return m, m.input.Focus()
}

func (m *Model) updateBrute(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.toMenu()
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.table.Focus()
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.table.Blur()
		return m, cmd
	case tea.KeyEnter:
		value := m.input.Value()
		m.input.SetValue("")
		return m.applyEvent(m.session.Handle(value))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyEvent(ev browse.Event) (tea.Model, tea.Cmd) {
	m.clearStatus()
	switch ev.Action {
	case browse.ActionShowDetail:
		m.table.SetCursor(m.session.Selected() - 1)
		m.setDetail(fmt.Sprintf("Key %d (score=%d)", ev.Candidate.Key, ev.Candidate.Score), ev.Candidate.Text)
	case browse.ActionExportMenu:
		m.showDetail = false
	case browse.ActionCopy:
		m.copyText(ev.Text)
	case browse.ActionSave:
		fallback := m.cfg.OutputFile
		if ev.From == browse.StateExport {
			fallback = m.cfg.ExportFile
		}
		return m, m.startSave(ev.Text, fallback)
	case browse.ActionPrint:
		m.setDetail("ALL CANDIDATES", ev.Text)
	case browse.ActionBack:
		m.showDetail = false
	case browse.ActionCancel:
		m.setOK("Cancelled.")
	case browse.ActionInvalidIndex:
		m.setError("Invalid number.")
	case browse.ActionUnknown:
		m.setError("Unknown command. Enter a number, 'a' or 'q'.")
	case browse.ActionQuit:
		return m.toMenu()
	}
	return m, nil
}

func (m *Model) setDetail(title, text string) {
	m.detailTitle = title
	m.detailRaw = text
	m.detail.SetContent(wrapText(text, m.detail.Width))
	m.detail.GotoTop()
	m.showDetail = true
}

func (m *Model) bruteHint() string {
	if m.session == nil {
		return ""
	}
	switch m.session.State() {
	case browse.StateDetail:
		return "[1/c] copy  [2/s] save to file  [enter] back"
	case browse.StatePostAction:
		return "Press enter to continue..."
	case browse.StateExport:
		return "(1) copy  (2) save to file  (3) print  (q) cancel"
	default:
		return "Enter a number (e.g. 1) to view the plaintext, 'a' to export all, 'q' to return."
	}
}

func bruteColumns(width int) []table.Column {
	preview := maxInt(10, width-4-4-6-6)
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Key", Width: 3},
		{Title: "Score", Width: 5},
		{Title: "Preview", Width: preview},
	}
}

func bruteRows(ranked analysis.Ranked, previewWidth int) []table.Row {
	rows := make([]table.Row, 0, len(ranked))
	for i, c := range ranked {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(c.Key),
			strconv.Itoa(c.Score),
			report.Preview(c.Text, previewWidth),
		})
	}
	return rows
}

func bruteTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
