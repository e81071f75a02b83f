package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/clipuni/clipboard"
	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/pipeline"
	"github.com/wippyai/clipuni/report"
	"github.com/wippyai/clipuni/textctl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	codepageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	cursorStyle = lipgloss.NewStyle().Reverse(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2)

	errorPopupStyle = popupStyle.BorderForeground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const aboutText = "Unicode Clipboard Demonstration\n\n" +
	"Text is copied in the active codepage and as 16-bit\n" +
	"\"text/unicode\". Paste prefers the Unicode text."

type editorModel struct {
	pc        *pipeline.Context
	disp      *pipeline.Dispatcher
	active    *codepage.Active
	popups    *report.Recorder
	mirror    *clipboard.Mirror
	buf       *textctl.Buffer
	cs        *charset
	status    string
	queue     []report.Popup
	prompt    textinput.Model
	help      help.Model
	keys      keyMap
	width     int
	height    int
	top       int
	prompting bool
}

func newEditorModel(pc *pipeline.Context, active *codepage.Active, popups *report.Recorder, mirror *clipboard.Mirror) *editorModel {
	prompt := textinput.New()
	prompt.Prompt = "Codepage: "
	prompt.Placeholder = "850 or IBM-850"
	prompt.CharLimit = codepage.MaxSpecLen
	prompt.Width = 20

	return &editorModel{
		pc:     pc,
		disp:   pipeline.NewDispatcher(pc),
		active: active,
		popups: popups,
		mirror: mirror,
		buf:    textctl.NewBuffer(nil),
		cs:     newCharset(active.Codepage()),
		prompt: prompt,
		help:   help.New(),
		keys:   newKeyMap(),
		height: 24,
	}
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if len(m.queue) > 0 {
			if key.Matches(msg, m.keys.Dismiss) {
				m.queue = m.queue[1:]
			}
			return m, nil
		}
		if m.prompting {
			return m, m.updatePrompt(msg)
		}
		m.handleKey(msg)
		m.scroll()
	}
	return m, nil
}

func (m *editorModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		cp, err := parseCodepage(m.prompt.Value(), "")
		if err != nil {
			m.status = err.Error()
			return nil
		}
		m.setCodepage(cp)
		return nil
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *editorModel) handleKey(msg tea.KeyMsg) {
	if a := m.keys.action(msg); a != pipeline.ActionNone {
		m.dispatch(a)
		return
	}

	switch {
	case key.Matches(msg, m.keys.SelectAll):
		m.buf.SelectAll()
		return
	case key.Matches(msg, m.keys.NextCP):
		m.setCodepage(codepage.Next(m.active.Codepage()))
		return
	case key.Matches(msg, m.keys.ChooseCP):
		m.prompting = true
		m.prompt.SetValue("")
		m.prompt.Focus()
		return
	case key.Matches(msg, m.keys.About):
		m.queue = append(m.queue, report.Popup{Title: "Product Information", Message: aboutText})
		return
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.buf.Left(false)
	case tea.KeyRight:
		m.buf.Right(false)
	case tea.KeyUp:
		m.buf.Up(false)
	case tea.KeyDown:
		m.buf.Down(false)
	case tea.KeyHome:
		m.buf.Home(false)
	case tea.KeyEnd:
		m.buf.End(false)
	case tea.KeyShiftLeft:
		m.buf.Left(true)
	case tea.KeyShiftRight:
		m.buf.Right(true)
	case tea.KeyShiftUp:
		m.buf.Up(true)
	case tea.KeyShiftDown:
		m.buf.Down(true)
	case tea.KeyShiftHome:
		m.buf.Home(true)
	case tea.KeyShiftEnd:
		m.buf.End(true)
	case tea.KeyBackspace:
		m.buf.Backspace()
	case tea.KeyDelete:
		m.buf.Delete()
	case tea.KeyEnter:
		m.buf.Insert([]byte{'\n'})
	case tea.KeyTab:
		m.buf.Insert([]byte{'\t'})
	case tea.KeySpace:
		m.buf.Insert([]byte{' '})
	case tea.KeyRunes:
		m.buf.Insert(m.cs.encodeRunes(msg.Runes))
	}
}

// dispatch runs a clipboard action and queues the popups it reported.
func (m *editorModel) dispatch(a pipeline.Action) {
	if a == pipeline.ActionPaste && m.mirror != nil {
		if _, err := m.mirror.Sync(m.pc.Board()); err != nil {
			m.popups.Popup("Error", "Error reading the host clipboard:\n"+err.Error())
		}
	}

	n, err := m.disp.Dispatch(a, m.buf)
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = fmt.Sprintf("%s: %d bytes", a, n)
	}

	m.queue = append(m.queue, m.popups.Popups()...)
	m.popups.Reset()
}

func (m *editorModel) setCodepage(cp uint32) {
	m.active.Set(cp)
	m.cs = newCharset(cp)
	m.status = "active " + m.cs.name
	if !m.cs.known {
		m.status += " (no converter)"
	}
}

// textRows is the number of buffer lines that fit on screen.
func (m *editorModel) textRows() int {
	return max(m.height-4, 3)
}

// scroll keeps the cursor line visible.
func (m *editorModel) scroll() {
	line, _ := m.buf.LineCol()
	rows := m.textRows()
	if line < m.top {
		m.top = line
	}
	if line >= m.top+rows {
		m.top = line - rows + 1
	}
}

func (m *editorModel) View() string {
	if len(m.queue) > 0 {
		return m.viewPopup(m.queue[0])
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Unicode Clipboard"))
	b.WriteString(" ")
	b.WriteString(codepageStyle.Render(m.cs.name))
	b.WriteString("\n")

	b.WriteString(m.viewText())

	line, col := m.buf.LineCol()
	if m.prompting {
		b.WriteString(m.prompt.View())
	} else {
		status := fmt.Sprintf("%d:%d", line+1, col+1)
		if m.status != "" {
			status += "  " + m.status
		}
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// viewText renders the visible lines with the selection and cursor.
func (m *editorModel) viewText() string {
	var b strings.Builder
	sel := m.buf.Selection()
	cursor := m.buf.Cursor()
	rows := m.textRows()

	pos := 0
	for i, line := range m.buf.Lines() {
		start := pos
		pos += len(line) + 1
		if i < m.top {
			continue
		}
		if i >= m.top+rows {
			break
		}
		for j, c := range line {
			off := start + j
			glyph := string(m.cs.display(c))
			switch {
			case off == cursor:
				b.WriteString(cursorStyle.Render(glyph))
			case off >= sel.Start && off < sel.End:
				b.WriteString(selectedStyle.Render(glyph))
			default:
				b.WriteString(glyph)
			}
		}
		if start+len(line) == cursor {
			b.WriteString(cursorStyle.Render(" "))
		}
		b.WriteString("\n")
	}
	for i := len(m.buf.Lines()); i < m.top+rows; i++ {
		b.WriteString(helpStyle.Render("~"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *editorModel) viewPopup(p report.Popup) string {
	style, title := popupStyle, titleStyle
	if p.Title == "Error" {
		style, title = errorPopupStyle, errorStyle.Bold(true)
	}
	box := style.Render(title.Render(p.Title) + "\n\n" + p.Message + "\n\n" +
		helpStyle.Render("enter dismiss • ctrl+q quit"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func runEditor(m *editorModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
