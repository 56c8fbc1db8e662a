package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/repolens/pkg/integrations/github"
)

func testRecords(n int) []github.Record {
	records := make([]github.Record, n)
	for i := range records {
		records[i] = github.Record{
			"number": float64(i + 1),
			"title":  "issue " + string(rune('a'+i)),
		}
	}
	return records
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m RecordListModel, msgs ...tea.Msg) (RecordListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(RecordListModel)
	}
	return m, cmd
}

func TestRecordListNavigation(t *testing.T) {
	m := NewRecordListModel("issues", testRecords(3))

	m, _ = update(m, key("down"), key("j"), key("down"))
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped at end)", m.Cursor)
	}

	m, _ = update(m, key("up"), key("k"), key("k"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 (clamped at start)", m.Cursor)
	}
}

func TestRecordListSelect(t *testing.T) {
	m := NewRecordListModel("issues", testRecords(3))

	m, cmd := update(m, key("down"), key("enter"))
	if m.Selected == nil || m.Selected["title"] != "issue b" {
		t.Errorf("Selected = %v, want issue b", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestRecordListQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m, cmd := update(NewRecordListModel("issues", testRecords(2)), key(k))
		if m.Selected != nil {
			t.Errorf("%s: Selected = %v, want nil", k, m.Selected)
		}
		if cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestRecordListScroll(t *testing.T) {
	m := NewRecordListModel("issues", testRecords(20))
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 13})
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	for i := 0; i < 7; i++ {
		m, _ = update(m, key("down"))
	}
	if m.Cursor != 7 || m.Offset != 3 {
		t.Errorf("Cursor/Offset = %d/%d, want 7/3", m.Cursor, m.Offset)
	}
}

func TestRecordListView(t *testing.T) {
	m := NewRecordListModel("octo/hello · open issues", testRecords(2))
	view := m.View()

	for _, want := range []string{"octo/hello", "#1", "issue a", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	empty := NewRecordListModel("empty", nil).View()
	if !strings.Contains(empty, "nothing open") {
		t.Errorf("empty View() = %q", empty)
	}
}

func TestRenderRecordTable(t *testing.T) {
	out := renderRecordTable(testRecords(2))
	for _, want := range []string{"Title", "#2", "issue b"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderRecordTable() missing %q", want)
		}
	}
}
