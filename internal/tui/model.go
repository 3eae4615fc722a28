// Package tui provides the Bubble Tea interface for the Caesar cipher tool.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/browse"
	"github.com/verte-zerg/caesar/internal/cipher"
	"github.com/verte-zerg/caesar/internal/model"
	"github.com/verte-zerg/caesar/internal/textio"
)

type screen int

const (
	screenMenu screen = iota
	screenText
	screenKey
	screenResult
	screenSave
	screenWorking
	screenBrute
	screenHelp
)

type flow int

const (
	flowEncrypt flow = iota
	flowDecrypt
	flowBrute
)

var menuItems = []string{
	"Encrypt",
	"Decrypt",
	"Brute-force decrypt (ranked suggestions)",
	"Help",
	"Exit",
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxPanelWidth = 84
)

// Recorder stores run metadata.
type Recorder interface {
	InsertRun(ctx context.Context, run model.Run) (int64, error)
}

// Options wires the model to its collaborators.
type Options struct {
	Config model.Config
	// Recorder is optional; nil disables history.
	Recorder Recorder
	Logger   *log.Logger
	// Copy and Save default to the textio implementations.
	Copy func(text string) error
	Save func(path, fallback, text string) (string, error)
}

type bruteDoneMsg struct {
	seq    int
	ranked analysis.Ranked
	err    error
}

// Model implements the interactive cipher UI.
type Model struct {
	opts       Options
	cfg        model.Config
	logger     *log.Logger
	standalone bool

	width  int
	height int

	screen     screen
	flow       flow
	menuCursor int

	input    textinput.Model
	fileMode bool

	text        string
	result      string
	resultTitle string

	saveText     string
	saveFallback string
	saveReturn   screen

	spinner     spinner.Model
	cancelBrute context.CancelFunc
	bruteSeq    int

	session     *browse.Session
	table       table.Model
	detail      viewport.Model
	detailTitle string
	detailRaw   string
	showDetail  bool

	status    string
	statusErr bool
}

// NewModel constructs the menu-driven UI.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Copy == nil {
		opts.Copy = textio.Copy
	}
	if opts.Save == nil {
		opts.Save = textio.Save
	}
	m := &Model{
		opts:   opts,
		cfg:    opts.Config,
		logger: opts.Logger,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.input = textinput.New()
	m.input.CharLimit = 0
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(spinnerStyle))
	m.table = table.New(table.WithColumns(bruteColumns(defaultWidth)))
	m.table.SetStyles(bruteTableStyles())
	m.detail = viewport.New(defaultWidth, 8)
	m.updateLayout()
	return m
}

// NewBruteModel constructs a UI that only runs the brute-force browser over
// ciphertext and exits when the user leaves it. An empty ciphertext is valid.
func NewBruteModel(opts Options, ciphertext string) *Model {
	m := newStandaloneBrute(opts)
	m.text = ciphertext
	m.screen = screenWorking
	return m
}

// NewBrutePromptModel is NewBruteModel for callers without input: it asks for
// the ciphertext first.
func NewBrutePromptModel(opts Options) *Model {
	m := newStandaloneBrute(opts)
	m.startTextPrompt()
	return m
}

func newStandaloneBrute(opts Options) *Model {
	m := NewModel(opts)
	m.standalone = true
	m.flow = flowBrute
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	switch m.screen {
	case screenWorking:
		return m.startBrute()
	case screenText:
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case bruteDoneMsg:
		return m.handleBruteDone(msg)
	case spinner.TickMsg:
		if m.screen != screenWorking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.stopBrute()
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenText:
			return m.updateText(msg)
		case screenKey:
			return m.updateKey(msg)
		case screenResult:
			return m.updateResult(msg)
		case screenSave:
			return m.updateSave(msg)
		case screenWorking:
			return m.updateWorking(msg)
		case screenBrute:
			return m.updateBrute(msg)
		case screenHelp:
			return m.toMenu()
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter":
		return m.selectMenu(m.menuCursor)
	case "q", "esc":
		return m, tea.Quit
	}
	if n, err := strconv.Atoi(msg.String()); err == nil {
		if n >= 1 && n <= len(menuItems) {
			m.menuCursor = n - 1
			return m.selectMenu(n - 1)
		}
		m.setError("Invalid choice. Try again.")
	}
	return m, nil
}

func (m *Model) selectMenu(idx int) (tea.Model, tea.Cmd) {
	m.clearStatus()
	switch idx {
	case 0:
		m.flow = flowEncrypt
		return m, m.startTextPrompt()
	case 1:
		m.flow = flowDecrypt
		return m, m.startTextPrompt()
	case 2:
		m.flow = flowBrute
		return m, m.startTextPrompt()
	case 3:
		m.screen = screenHelp
		return m, nil
	default:
		return m, tea.Quit
	}
}

func (m *Model) startTextPrompt() tea.Cmd {
	m.screen = screenText
	m.fileMode = false
	m.configureInput(m.textPrompt(), "")
	return m.input.Focus()
}

func (m *Model) textPrompt() string {
	if m.fileMode {
		return "File path: "
	}
	switch m.flow {
	case flowEncrypt:
		return "Plaintext: "
	case flowDecrypt:
		return "Ciphertext: "
	default:
		return "Ciphertext to brute-force: "
	}
}

func (m *Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.toMenu()
	case tea.KeyTab:
		m.fileMode = !m.fileMode
		m.input.Prompt = m.textPrompt()
		m.input.SetValue("")
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		if m.fileMode {
			text, err := textio.ReadInput(nil, strings.TrimSpace(value))
			if err != nil {
				m.setError(err.Error())
				return m, nil
			}
			value = text
		}
		m.text = value
		m.clearStatus()
		if m.flow == flowBrute {
			m.screen = screenWorking
			m.input.Blur()
			return m, m.startBrute()
		}
		m.screen = screenKey
		m.configureInput(m.keyPrompt(), "")
		return m, m.input.Focus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) keyPrompt() string {
	if m.flow == flowEncrypt {
		return "Key (integer, can be negative): "
	}
	return "Key (integer): "
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.toMenu()
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		if raw == "" && m.cfg.Key != 0 {
			raw = strconv.Itoa(m.cfg.Key)
		}
		key, err := ParseKey(raw)
		if err != nil {
			m.setError("Key must be an integer. Try again.")
			m.input.SetValue("")
			return m, nil
		}
		m.clearStatus()
		m.input.Blur()
		m.finishCipher(key)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ParseKey accepts an optional leading minus followed by decimal digits.
func ParseKey(raw string) (int, error) {
	digits := strings.TrimPrefix(raw, "-")
	if digits == "" {
		return 0, fmt.Errorf("key is empty")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("key %q is not an integer", raw)
		}
	}
	key, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("key %q is out of range", raw)
	}
	return key, nil
}

func (m *Model) finishCipher(key int) {
	mode := model.ModeEncrypt
	if m.flow == flowEncrypt {
		m.result = cipher.Encrypt(m.text, key)
	} else {
		mode = model.ModeDecrypt
		m.result = cipher.Decrypt(m.text, key)
	}
	m.resultTitle = "RESULT"
	m.screen = screenResult
	m.record(model.Run{Mode: mode, Key: key, InputChars: utf8.RuneCountInString(m.text)})
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "c":
		m.copyText(m.result)
		return m, nil
	case "2", "s":
		return m, m.startSave(m.result, m.cfg.OutputFile)
	case "enter", "esc", "q":
		return m.toMenu()
	}
	return m, nil
}

func (m *Model) startSave(text, fallback string) tea.Cmd {
	m.saveText = text
	m.saveFallback = fallback
	m.saveReturn = m.screen
	m.screen = screenSave
	m.configureInput(fmt.Sprintf("File name (default %s): ", fallback), fallback)
	return m.input.Focus()
}

func (m *Model) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.setError("Save cancelled.")
		return m.returnFromSave()
	case tea.KeyEnter:
		path, err := m.opts.Save(strings.TrimSpace(m.input.Value()), m.saveFallback, m.saveText)
		if err != nil {
			m.logger.Debug("save failed", "err", err)
			m.setError(fmt.Sprintf("Save failed: %v", err))
		} else {
			m.setOK(fmt.Sprintf("Saved to %s", path))
		}
		return m.returnFromSave()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) returnFromSave() (tea.Model, tea.Cmd) {
	m.screen = m.saveReturn
	m.saveText = ""
	if m.screen == screenBrute {
		m.configureInput("> ", "")
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m *Model) copyText(text string) {
	if err := m.opts.Copy(text); err != nil {
		m.logger.Debug("copy failed", "err", err)
		m.setError(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.setOK("Copied to clipboard.")
}

func (m *Model) record(run model.Run) {
	if m.opts.Recorder == nil || !m.cfg.History {
		return
	}
	if _, err := m.opts.Recorder.InsertRun(context.Background(), run); err != nil {
		m.logger.Debug("failed to record run", "mode", run.Mode, "err", err)
	}
}

func (m *Model) toMenu() (tea.Model, tea.Cmd) {
	if m.standalone {
		return m, tea.Quit
	}
	m.screen = screenMenu
	m.input.Blur()
	m.input.SetValue("")
	m.text = ""
	m.result = ""
	m.session = nil
	m.showDetail = false
	return m, nil
}

func (m *Model) configureInput(prompt, placeholder string) {
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Width = maxInt(10, m.panelWidth()-len(prompt)-4)
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) setOK(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) panelWidth() int {
	return minInt(maxPanelWidth, maxInt(20, m.width-4))
}

func (m *Model) updateLayout() {
	inner := m.panelWidth() - 4
	m.input.Width = maxInt(10, inner-len(m.input.Prompt))
	m.table.SetColumns(bruteColumns(inner))
	m.table.SetWidth(inner)
	m.table.SetHeight(maxInt(3, m.height/2-2))
	m.detail.Width = inner
	m.detail.Height = maxInt(3, m.height/3)
	if m.showDetail {
		m.setDetail(m.detailTitle, m.detailRaw)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
