// Package tui renders the staging workflow: a file list, a diff preview,
// and a commit message strip, coordinated by the session state machine.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/stagium/internal/config"
	"github.com/interpretive-systems/stagium/internal/gitx"
	"github.com/interpretive-systems/stagium/internal/prefs"
	"github.com/interpretive-systems/stagium/internal/session"
)

// notice captures session notifications for the status bar. The session
// calls set synchronously from inside action handlers; the model copies the
// latest notice into its view state after each dispatched action.
type notice struct {
	severity string
	text     string
}

func (n *notice) set(severity, text string) {
	n.severity = severity
	n.text = text
}

func (n *notice) clear() {
	n.severity = ""
	n.text = ""
}

// Model is the Bubble Tea model for one workflow session.
type Model struct {
	sess   *session.Session
	runner gitx.Runner
	notice *notice

	theme  Theme
	layout Layout
	keys   KeyHandler
	list   *FileList
	diff   *DiffPane
	input  textinput.Model

	editing   bool
	msgEdited bool
	showHelp  bool
	committed bool

	branch      string
	lastCommit  string
	lastRefresh time.Time

	status      string
	statusSev   string
	diffErr     string
	quitMessage string
}

// Run opens the interactive workflow against a verified repository root.
// It returns nil without showing panels when the working tree is clean.
func Run(root string, cfg *config.Config) error {
	runner := gitx.ExecRunner{Dir: root}
	git := gitx.NewService(runner)

	applied := *cfg
	p := prefs.Load(runner)
	if p.WrapSet {
		applied.Wrap = p.Wrap
	}
	if p.SideSet {
		applied.SideBySide = p.SideBySide
	}
	if p.SelectModeSet {
		applied.SelectMode = p.SelectMode
	}
	if p.LeftSet {
		applied.LeftWidth = p.LeftWidth
	}

	n := &notice{}
	sess := session.New(git, n.set, applied.SelectMode)
	if err := sess.Open(); err != nil {
		if errors.Is(err, session.ErrNoChanges) {
			fmt.Println("stagium: no changes to commit")
			return nil
		}
		return err
	}

	m := newModel(root, runner, git, sess, &applied, n)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.quitMessage != "" {
		fmt.Println(fm.quitMessage)
	}
	return nil
}

// newModel builds a model around an already-open session.
func newModel(root string, runner gitx.Runner, git *gitx.Service, sess *session.Session, cfg *config.Config, n *notice) Model {
	theme := LoadTheme(root, cfg.Theme)
	m := Model{
		sess:        sess,
		runner:      runner,
		notice:      n,
		theme:       theme,
		list:        NewFileList(sess.SelectMode()),
		diff:        NewDiffPane(theme, cfg.SideBySide, cfg.Wrap),
		lastRefresh: time.Now(),
	}
	if cfg.LeftWidth > 0 {
		m.layout.SetLeftWidth(cfg.LeftWidth)
	}
	m.list.SetFiles(sess.Files())
	if branch, err := git.CurrentBranch(); err == nil {
		m.branch = branch
	}
	if last, err := git.LastCommitSummary(); err == nil {
		m.lastCommit = last
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Commit message"
	ti.CharLimit = 0
	m.input = ti
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.resizePanes()
		m.reloadDiff()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A fresh keypress dismisses the previous transient notification.
	m.status = ""
	m.statusSev = ""

	if m.editing {
		return m.handleEditingKey(msg)
	}
	if m.showHelp {
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Quit()
			return m, tea.Quit
		default:
			m.showHelp = false
			m.resizePanes()
			return m, nil
		}
	}

	action, count := m.keys.Handle(msg)
	switch action {
	case ActionQuit:
		m.sess.Quit()
		return m, tea.Quit
	case ActionToggleHelp:
		m.showHelp = !m.showHelp
		m.resizePanes()
	case ActionMoveDown:
		m.moveCursor(count)
	case ActionMoveUp:
		m.moveCursor(-count)
	case ActionGoToTop:
		if m.list.GoToTop() {
			m.previewCursor()
		}
	case ActionGoToBottom:
		if m.list.GoToBottom() {
			m.previewCursor()
		}
	case ActionToggleSelect:
		m.sess.ToggleSelect(m.list.Cursor())
		m.list.SetFiles(m.sess.Files())
		m.regenerateUnlessEdited()
	case ActionStageToggle:
		if err := m.sess.StageToggle(m.list.Cursor()); err == nil {
			m.afterRefresh()
		}
		m.syncNotice()
	case ActionPreview:
		m.previewCursor()
	case ActionClearPreview:
		m.sess.PreviewFile(-1)
		m.reloadDiff()
	case ActionRegenerate:
		m.msgEdited = false
		m.sess.Regenerate()
	case ActionEditMessage:
		m.beginEditing()
		return m, textinput.Blink
	case ActionCommit:
		return m.commit()
	case ActionRefresh:
		if err := m.sess.Refresh(); err == nil {
			m.afterRefresh()
		}
		m.syncNotice()
	case ActionFocusNext:
		return m.cycleFocus(true)
	case ActionFocusPrev:
		return m.cycleFocus(false)
	case ActionToggleWrap:
		wrap := m.diff.ToggleWrap()
		_ = prefs.SaveWrap(m.runner, wrap)
	case ActionToggleSideBySide:
		side := m.diff.ToggleSideBySide()
		_ = prefs.SaveSideBySide(m.runner, side)
	case ActionNarrowLeft:
		m.layout.AdjustLeftWidth(-2)
		m.resizePanes()
		_ = prefs.SaveLeftWidth(m.runner, m.layout.LeftWidth())
	case ActionWidenLeft:
		m.layout.AdjustLeftWidth(2)
		m.resizePanes()
		_ = prefs.SaveLeftWidth(m.runner, m.layout.LeftWidth())
	case ActionPageDown:
		m.diff.PageDown()
	case ActionPageUp:
		m.diff.PageUp()
	case ActionHalfPageDown:
		m.diff.HalfPageDown()
	case ActionHalfPageUp:
		m.diff.HalfPageUp()
	case ActionLineDown:
		m.diff.LineDown()
	case ActionLineUp:
		m.diff.LineUp()
	}
	return m, nil
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.adoptMessage()
		return m, nil
	case "tab":
		m.adoptMessage()
		return m.cycleFocus(true)
	case "ctrl+c":
		m.sess.Quit()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveCursor moves the file cursor and previews the file under it when the
// file list has focus; otherwise j/k scroll the diff.
func (m *Model) moveCursor(delta int) {
	if m.sess.Focus() == session.FocusDiff {
		for i := 0; i < delta; i++ {
			m.diff.LineDown()
		}
		for i := 0; i < -delta; i++ {
			m.diff.LineUp()
		}
		return
	}
	if m.list.Move(delta) {
		m.previewCursor()
	}
}

func (m *Model) previewCursor() {
	m.sess.PreviewFile(m.list.Cursor())
	m.reloadDiff()
}

// afterRefresh re-syncs derived view state after any session refresh, so
// panels never show content older than the last successful mutation.
func (m *Model) afterRefresh() {
	m.list.SetFiles(m.sess.Files())
	m.regenerateUnlessEdited()
	m.reloadDiff()
	m.lastRefresh = time.Now()
}

func (m *Model) regenerateUnlessEdited() {
	if !m.msgEdited {
		m.sess.Regenerate()
	}
}

func (m *Model) reloadDiff() {
	text, err := m.sess.DiffText()
	if err != nil {
		m.diffErr = err.Error()
		m.diff.SetText("(diff unavailable)")
		return
	}
	m.diffErr = ""
	if m.sess.FocusedIndex() >= 0 {
		m.diff.SetDiff(text)
	} else {
		m.diff.SetText(text)
	}
}

func (m *Model) beginEditing() {
	m.editing = true
	m.input.SetValue(m.sess.Message())
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) adoptMessage() {
	m.editing = false
	m.input.Blur()
	if m.input.Value() != m.sess.Message() {
		m.msgEdited = true
	}
	m.sess.SetMessage(m.input.Value())
}

func (m Model) cycleFocus(forward bool) (tea.Model, tea.Cmd) {
	if forward {
		m.sess.FocusNext()
	} else {
		m.sess.FocusPrev()
	}
	if m.sess.Focus() == session.FocusMessage {
		m.beginEditing()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) commit() (tea.Model, tea.Cmd) {
	err := m.sess.Commit()
	m.syncNotice()
	if err != nil {
		// Select mode may have staged files before the failure; re-sync.
		m.list.SetFiles(m.sess.Files())
		m.reloadDiff()
		return m, nil
	}
	m.committed = true
	m.quitMessage = "stagium: " + m.status
	return m, tea.Quit
}

func (m *Model) syncNotice() {
	if m.notice.text == "" {
		return
	}
	m.status = m.notice.text
	m.statusSev = m.notice.severity
	m.notice.clear()
}

func (m *Model) resizePanes() {
	if m.layout.Width() == 0 {
		return
	}
	overlay := 0
	if m.showHelp {
		overlay = len(m.helpLines())
	}
	m.diff.SetSize(m.layout.RightWidth(), m.layout.ContentHeight(overlay))
}

func (m Model) View() string {
	if m.layout.Width() == 0 || m.layout.Height() == 0 {
		return "Loading..."
	}
	var overlay []string
	if m.showHelp {
		overlay = m.helpLines()
	}
	contentHeight := m.layout.ContentHeight(len(overlay))
	leftLines := m.list.Lines(contentHeight, m.sess.FocusedIndex(), m.sess.Focus() == session.FocusFiles)
	rightLines := strings.Split(m.diff.View(), "\n")
	if m.diffErr != "" {
		rightLines = []string{m.theme.DelText("diff error: " + m.diffErr)}
	}
	return m.layout.Frame(
		m.theme,
		m.topBar(),
		leftLines,
		rightLines,
		overlay,
		m.messageStrip(),
		m.bottomBar(),
	)
}

func (m Model) topBar() string {
	title := "Stagium"
	if m.branch != "" {
		title += " | " + m.branch
	}
	if i := m.sess.FocusedIndex(); i >= 0 && i < len(m.sess.Files()) {
		f := m.sess.Files()[i]
		title += fmt.Sprintf(" | %s (%s)", f.Path, f.Label())
	} else {
		title += fmt.Sprintf(" | staged changes (%d)", len(m.sess.Staged()))
	}
	return title
}

func (m Model) messageStrip() string {
	label := "commit> "
	if m.sess.Focus() == session.FocusMessage || m.editing {
		label = m.theme.MetaText(label)
	} else {
		label = m.theme.DividerText(label)
	}
	if m.editing {
		return label + m.input.View()
	}
	msg := m.sess.Message()
	if msg == "" {
		return label + m.theme.DividerText("(empty; press i to edit, M to regenerate)")
	}
	return label + msg
}

func (m Model) bottomBar() string {
	left := "h: help"
	if m.lastCommit != "" {
		left += "  |  last: " + m.lastCommit
	}
	if m.status != "" {
		left = m.theme.SeverityText(m.statusSev, m.status)
	}
	right := m.theme.DividerText("refreshed: " + m.lastRefresh.Format("15:04:05"))
	gap := m.layout.Width() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return padToWidth(left, m.layout.Width())
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) helpLines() []string {
	lines := []string{
		strings.Repeat("─", m.layout.Width()),
		"j/k or arrows   Move selection / scroll diff",
		"enter/p, esc    Preview file / back to staged manifest",
		"s               Stage or unstage file",
	}
	if m.sess.SelectMode() {
		lines = append(lines, "space           Toggle file inclusion")
	}
	lines = append(lines,
		"i / M           Edit / regenerate commit message",
		"c               Commit",
		"tab/shift+tab   Cycle panel focus",
		"J/K, PgDn/PgUp  Scroll diff",
		"v / w           Side-by-side / wrap toggle",
		"</> or H/L      Adjust left pane width",
		"r               Refresh now",
		"q               Quit",
	)
	return lines
}
