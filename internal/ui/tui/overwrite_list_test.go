package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klauern/envsync/internal/model"
)

func makeEntries() []ConflictEntry {
	return []ConflictEntry{
		{Key: "EDITOR", Current: "nano", Incoming: "vim"},
		{Key: "PAGER", Current: "more", Incoming: "less"},
		{Key: "GREETING", Current: "hi", Incoming: "hello"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestOverwriteListModel_ToggleCurrent(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, _ := m.Update(keyMsg("space"))
	m = updated.(OverwriteListModel)

	keys := m.selectedKeys()
	if len(keys) != 1 || keys[0] != "EDITOR" {
		t.Errorf("expected [EDITOR] selected, got %v", keys)
	}

	// Toggling again deselects.
	updated, _ = m.Update(keyMsg("space"))
	m = updated.(OverwriteListModel)
	if len(m.selectedKeys()) != 0 {
		t.Errorf("expected nothing selected after second toggle, got %v", m.selectedKeys())
	}
}

func TestOverwriteListModel_SelectAllAndNone(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(OverwriteListModel)
	if len(m.selectedKeys()) != 3 {
		t.Errorf("expected all 3 selected, got %v", m.selectedKeys())
	}

	updated, _ = m.Update(keyMsg("n"))
	m = updated.(OverwriteListModel)
	if len(m.selectedKeys()) != 0 {
		t.Errorf("expected none selected, got %v", m.selectedKeys())
	}
}

func TestOverwriteListModel_Confirm(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, _ := m.Update(keyMsg("a"))
	m = updated.(OverwriteListModel)
	updated, cmd := m.Update(keyMsg("y"))
	m = updated.(OverwriteListModel)

	if cmd == nil {
		t.Error("confirm should quit the program")
	}
	result := m.Result()
	if result.Action != OverwriteActionApply {
		t.Errorf("expected apply action, got %v", result.Action)
	}
	if len(result.Keys) != 3 {
		t.Errorf("expected 3 keys in result, got %v", result.Keys)
	}
}

func TestOverwriteListModel_ConfirmEmptySelection(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, _ := m.Update(keyMsg("y"))
	m = updated.(OverwriteListModel)

	result := m.Result()
	if result.Action != OverwriteActionApply {
		t.Errorf("expected apply action, got %v", result.Action)
	}
	// Applying an empty selection skips every conflicting key.
	if len(result.Keys) != 0 {
		t.Errorf("expected no keys, got %v", result.Keys)
	}
}

func TestOverwriteListModel_Cancel(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, cmd := m.Update(keyMsg("esc"))
	m = updated.(OverwriteListModel)

	if cmd == nil {
		t.Error("cancel should quit the program")
	}
	if m.Result().Action != OverwriteActionCancel {
		t.Errorf("expected cancel action, got %v", m.Result().Action)
	}
}

func TestOverwriteListModel_RowMarks(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	rows := m.table.Rows()
	if rows[0][0] != "○" {
		t.Errorf("expected unselected mark, got %q", rows[0][0])
	}

	updated, _ := m.Update(keyMsg("space"))
	m = updated.(OverwriteListModel)
	rows = m.table.Rows()
	if rows[0][0] != "✓" {
		t.Errorf("expected selected mark, got %q", rows[0][0])
	}
}

func TestOverwriteListModel_View(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	view := m.View()
	if !strings.Contains(view, "Existing Variables") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "User Scope") {
		t.Error("expected scope label in view")
	}
	if !strings.Contains(view, "0/3 selected") {
		t.Errorf("expected selection status in view, got:\n%s", view)
	}
}

func TestOverwriteListModel_HelpToggle(t *testing.T) {
	m := NewOverwriteListModel(makeEntries(), model.ScopeUser)

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(OverwriteListModel)
	if !m.showHelp {
		t.Error("expected help to be shown after ?")
	}
	if !strings.Contains(m.View(), "Toggle overwrite") {
		t.Error("expected full help text in view")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a-very-long-value", 10, "a-very-lo…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRunOverwriteList_Empty(t *testing.T) {
	result, err := RunOverwriteList(nil, model.ScopeUser)
	if err != nil {
		t.Fatalf("RunOverwriteList failed: %v", err)
	}
	if result.Action != OverwriteActionNone {
		t.Errorf("expected no action for empty entries, got %v", result.Action)
	}
}
