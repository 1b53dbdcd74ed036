package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/k3tzchen/conf/config"
	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/lang"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/store"
	"github.com/k3tzchen/conf/version"
)

// editTreeMsg is sent when the user saved a valid tree in the editor.
type editTreeMsg struct{ tree any }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a decode
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-decode error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help      Print this cruft
  list      List top-level keys
  paths     List every addressable path
  hash      Print the fingerprint of the loaded version
  versions  List stored versions
  edit      Edit the tree in $EDITOR and commit a new version
  clear     Clear screen
  quit      Exit REPL

Usage:
  Type a dotted path to resolve it, or a directive to evaluate it:
    server.port
    $server.host ?? localhost
    {{ if ($env equals prod) then (on) else (off) }}
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to switch to command mode and navigate command history
    (restores original mode when reaching end of history)
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and input
// styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// Session identifies the stored configuration opened by the REPL.
type Session struct {
	Store   *store.Store
	Name    string
	Version string
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc          func() context.Context
	input            textinput.Model
	store            *store.Store
	name             string
	version          string
	cfg              *config.Config
	paths            []string
	logger           log.Logger
	history          *History
	historyIdx       int
	matches          fuzzy.Matches // current fuzzy match results
	candidates       []string      // backing candidate list
	wordStart        int           // byte offset of current word start
	wordEnd          int           // byte offset of current word end
	suggIdx          int           // selected candidate index
	tabActive        bool          // whether user is tab-cycling
	preTabText       string        // input text before tab-cycling began
	preTabCursor     int           // cursor position before tab-cycling began
	altNavActive     bool          // whether user is in Alt+Up/Down navigation
	altNavOrigMode   inputMode     // original mode before Alt navigation
	altNavOrigText   string        // original text before Alt navigation
	altNavOrigCursor int           // original cursor position before Alt navigation
	width            int           // terminal width for ellipsization
	quitting         bool
	mode             inputMode
	evalText         string
	evalCursor       int
	ctrlText         string
	ctrlCursor       int
}

// Run starts the REPL on a version of the configuration named by sess.
func Run(
	ctx context.Context,
	sess Session,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.String("name", sess.Name),
		slog.String("version", sess.Version),
	)

	if sess.Store == nil {
		return ErrNoStore
	}

	ver := sess.Version
	if version.IsLatest(ver) {
		if ver, err = sess.Store.Latest(sess.Name); err != nil {
			return err
		}
	}

	cfg, err := sess.Store.Load(ctx, sess.Name, ver)
	if err != nil {
		return err
	}

	logger.TraceContext(
		ctx,
		"repl config loaded",
		slog.String("version", ver),
		slog.Int("key_count", len(cfg.Tree())),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, sess.Store, sess.Name, ver, cfg, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	s *store.Store,
	name, ver string,
	cfg *config.Config,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		store:      s,
		name:       name,
		version:    ver,
		cfg:        cfg,
		paths:      cfg.Paths(),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editTreeMsg:
		return m.commit(msg.tree)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 — edit cancelled."))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(
			errorStyle.Render("🗴 — error: " + msg.err.Error()),
		)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	viewingHistory := m.historyIdx < m.history.Len()

	clause := detectClause(input, m.input.Position())

	switch {
	case viewingHistory:
		pos := m.historyIdx + 1 // 1-based for display
		total := m.history.Len()
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			total)
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		var hint string
		if m.mode == modeEval {
			hint = fmt.Sprintf("%s@%s: type a path or directive, or press Esc for commands",
				m.name, m.version)
		} else {
			hint = "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))

	case clause.ok && m.mode == modeEval:
		b.WriteString(renderClauseHint(clause))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Reset both mode inputs after submission
	m.evalText = ""
	m.evalCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")

	if _, err := m.history.WriteWithMode(input, m.mode); err != nil {
		m.logger.DebugContext(
			m.ctxFunc(),
			"history write failed",
			slog.Any("error", err),
		)
	}
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl command",
			slog.String("input", input),
		)

		return m.executeCommand(input)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	result, err := evaluate(m.cfg, input)
	if err != nil {
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl eval result",
			slog.String("result_type", "error"),
			slog.Any("error", err),
		)

		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl eval result",
		slog.String("result_type", resultTypeName(result)),
	)

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(formatResult(result))),
	)
}

// evaluate resolves input as a stored path when it names one, and as a
// directive otherwise.
func evaluate(c *config.Config, input string) (any, error) {
	if v, ok, err := c.Value(input); ok || err != nil {
		return v, err
	}

	return c.Eval(input)
}

// formatResult renders scalars as text and collections as YAML.
func formatResult(v any) string {
	switch v.(type) {
	case map[string]any, []any:
	default:
		return lang.FromNative(v).String()
	}

	c, err := format.Lookup("yaml")
	if err != nil {
		return fmt.Sprint(v)
	}

	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return fmt.Sprint(v)
	}

	return strings.TrimRight(buf.String(), "\n")
}

func (m model) executeCommand(
	input string,
) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCtrlCommand(input))

	cmd := parts[0]
	args := parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listKeys()))

	case "p", "paths":
		return m, tea.Sequence(echoCmd, tea.Println(strings.Join(m.paths, "\n")))

	case "hash":
		return m, tea.Sequence(echoCmd, tea.Println(resultStyle.Render(m.cfg.Hash())))

	case "v", "versions":
		vs, err := m.store.Versions(m.name)
		if err != nil {
			return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd, tea.Println(m.listVersions(vs)))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.handleEdit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) handleEdit() tea.Cmd {
	cmd := &editTreeCommand{
		name:    m.name,
		tree:    m.cfg.Tree(),
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.result == nil {
			return editCancelledMsg{}
		}

		return editTreeMsg{tree: cmd.result}
	})
}

// commit stores an edited tree as a new patch version and switches the
// session to it.
func (m model) commit(tree any) (model, tea.Cmd) {
	ctx := m.ctxFunc()

	ver, changed, err := m.store.Commit(ctx, m.name, tree, version.Patch)
	if err != nil {
		return m, tea.Println(errorStyle.Render("🗴 — error: " + err.Error()))
	}

	if !changed {
		return m, tea.Println(hintStyle.Render("🗴 — no changes."))
	}

	cfg, err := m.store.Load(ctx, m.name, ver)
	if err != nil {
		return m, tea.Println(errorStyle.Render("🗴 — error: " + err.Error()))
	}

	m.cfg = cfg
	m.paths = cfg.Paths()
	m.version = ver

	m.logger.TraceContext(
		ctx,
		"repl edit committed",
		slog.String("name", m.name),
		slog.String("version", ver),
	)

	return m, tea.Println(resultStyle.Render("✔ — committed version " + ver))
}

func (m model) listKeys() string {
	var b strings.Builder

	for _, p := range childCandidates(m.paths, "") {
		raw := m.cfg.Raw(p)[p]
		b.WriteString(fmt.Sprintf("  %s %s\n", p, hintStyle.Render(formatPreview(raw))))
	}

	return b.String()
}

func (m model) listVersions(vs []string) string {
	var b strings.Builder

	for _, v := range vs {
		if v == m.version {
			b.WriteString("* " + resultStyle.Render(v) + "\n")
		} else {
			b.WriteString("  " + v + "\n")
		}
	}

	return b.String()
}

func resultTypeName(value any) string {
	if value == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", value)
}
