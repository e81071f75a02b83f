package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/clipuni/clipboard"
	"github.com/wippyai/clipuni/codepage"
	"github.com/wippyai/clipuni/pipeline"
	"github.com/wippyai/clipuni/report"
	"github.com/wippyai/clipuni/sharedmem"
)

func TestParseCodepage(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		env     string
		want    uint32
		wantErr bool
	}{
		{"default", "", "", 850, false},
		{"flag number", "1252", "437", 1252, false},
		{"env fallback", "", " 866 ", 866, false},
		{"name", "ibm-437", "", 437, false},
		{"unknown number kept", "4242", "", 4242, false},
		{"full spec", "IBM-1252@map=cdra,path=no", "", 1252, false},
		{"spec without params", "ibm-866@", "", 866, false},
		{"spec other routing", "IBM-850@map=ucs", "", 0, true},
		{"spec unknown key", "IBM-850@table=x", "", 0, true},
		{"spec too long", "IBM-850@map=cdra,path=no" + strings.Repeat(",path=no", 6), "", 0, true},
		{"unknown name", "klingon", "", 0, true},
		{"zero", "0", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCodepage(tt.flag, tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintCodepages(t *testing.T) {
	var b bytes.Buffer
	printCodepages(&b)
	out := b.String()
	if !strings.Contains(out, "IBM-850") || !strings.Contains(out, "PC Latin 1") {
		t.Errorf("listing missing codepage 850:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != len(codepage.Known())+1 {
		t.Errorf("got %d lines", lines)
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("", "debug")
	if err != nil || l == nil {
		t.Fatalf("newLogger = %v, %v", l, err)
	}
	if _, err := newLogger(t.TempDir()+"/clipuni.log", "loud"); err == nil {
		t.Error("bad level accepted")
	}
}

func TestCharset(t *testing.T) {
	cs := newCharset(850)
	if b := cs.encode('é'); b != 0x82 {
		t.Errorf("encode(é) = %#x", b)
	}
	if r := cs.display(0x82); r != 'é' {
		t.Errorf("display(0x82) = %q", r)
	}
	if b := cs.encode('中'); b != '?' {
		t.Errorf("encode(中) = %#x", b)
	}
	if r := cs.display(0x07); r != '·' {
		t.Errorf("display(BEL) = %q", r)
	}

	unknown := newCharset(4242)
	if unknown.known || unknown.encode('A') != 'A' || unknown.display(0xE9) != '·' {
		t.Error("unknown codepage should show ASCII only")
	}
}

func TestKeyMap_Action(t *testing.T) {
	k := newKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want pipeline.Action
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlC}, pipeline.ActionCopy},
		{tea.KeyMsg{Type: tea.KeyCtrlX}, pipeline.ActionCut},
		{tea.KeyMsg{Type: tea.KeyCtrlV}, pipeline.ActionPaste},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, pipeline.ActionNone},
		{tea.KeyMsg{Type: tea.KeyF2}, pipeline.ActionNone},
	}
	for _, tt := range tests {
		if got := k.action(tt.msg); got != tt.want {
			t.Errorf("action(%s) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

func newTestModel(t *testing.T, cp uint32) *editorModel {
	t.Helper()
	ctx := context.Background()
	arena, err := sharedmem.New(ctx, sharedmem.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { arena.Close(ctx) })

	active := codepage.NewActive(cp)
	popups := &report.Recorder{}
	pc, err := pipeline.New(clipboard.NewBoard(arena, clipboard.NewRegistry()), active, popups, pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { pc.Close() })
	return newEditorModel(pc, active, popups, nil)
}

func send(m *editorModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditor_TypeCopyPaste(t *testing.T) {
	m := newTestModel(t, 850)

	send(m, runes("café"), tea.KeyMsg{Type: tea.KeyShiftLeft}, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got := m.buf.Bytes(); !bytes.Equal(got, []byte{'c', 'a', 'f', 0x82}) {
		t.Fatalf("buffer = % X", got)
	}

	send(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if string(m.buf.Bytes()) != "ca" {
		t.Errorf("after cut: %q", m.buf.Bytes())
	}
	if m.status != "cut: 2 bytes" {
		t.Errorf("status = %q", m.status)
	}

	// Paste under 1252: the wide text converts to the new codepage.
	send(m, tea.KeyMsg{Type: tea.KeyF3}, runes("1252"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.active.Codepage() != 1252 {
		t.Fatalf("codepage = %d", m.active.Codepage())
	}
	send(m, tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Bytes(); !bytes.Equal(got, []byte{'c', 'a', 'f', 0xE9}) {
		t.Errorf("after paste: % X", got)
	}
	if len(m.queue) != 0 {
		t.Errorf("unexpected popups: %+v", m.queue)
	}
}

func TestEditor_ErrorPopup(t *testing.T) {
	m := newTestModel(t, 4242)
	send(m, runes("abc"), tea.KeyMsg{Type: tea.KeyCtrlA}, tea.KeyMsg{Type: tea.KeyCtrlX})

	if string(m.buf.Bytes()) != "abc" {
		t.Errorf("cut with failed wide publish removed text: %q", m.buf.Bytes())
	}
	if len(m.queue) != 1 || m.queue[0].Title != "Error" {
		t.Fatalf("queue = %+v", m.queue)
	}
	if !strings.Contains(m.View(), "codepage.Resolve()") {
		t.Error("popup not rendered")
	}

	send(m, runes("x"))
	if string(m.buf.Bytes()) != "abc" {
		t.Error("typing reached the buffer behind a popup")
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.queue) != 0 {
		t.Error("popup not dismissed")
	}
}

func TestEditor_CodepageKeys(t *testing.T) {
	m := newTestModel(t, 850)
	send(m, tea.KeyMsg{Type: tea.KeyF2})
	if got := m.active.Codepage(); got != codepage.Next(850) {
		t.Errorf("F2 -> %d", got)
	}

	send(m, tea.KeyMsg{Type: tea.KeyF3}, runes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompting || !strings.Contains(m.status, "unknown codepage") {
		t.Errorf("status = %q", m.status)
	}

	send(m, tea.KeyMsg{Type: tea.KeyF3}, runes("IBM-866@map=cdra,path=no"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.active.Codepage(); got != 866 {
		t.Errorf("spec prompt -> %d, status %q", got, m.status)
	}

	send(m, tea.KeyMsg{Type: tea.KeyF3}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.prompting {
		t.Error("esc did not close the prompt")
	}
}

func TestEditor_AboutAndQuit(t *testing.T) {
	m := newTestModel(t, 850)
	send(m, tea.KeyMsg{Type: tea.KeyF1})
	if len(m.queue) != 1 || m.queue[0].Title != "Product Information" {
		t.Fatalf("queue = %+v", m.queue)
	}
	send(m, tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatal("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+q did not quit")
	}
}

func TestEditor_View(t *testing.T) {
	m := newTestModel(t, 850)
	send(m, tea.WindowSizeMsg{Width: 80, Height: 10}, runes("line one"), tea.KeyMsg{Type: tea.KeyEnter}, runes("two"))

	view := m.View()
	for _, want := range []string{"IBM-850", "line one", "2:4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
