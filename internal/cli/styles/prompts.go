package styles

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

const maxPromptPreview = 72

// PromptItem adapts one prompt history record for the list widget.
type PromptItem struct {
	Record entity.PromptRecord
}

// FilterValue implements list.Item.
func (i PromptItem) FilterValue() string {
	return i.Record.Text
}

// PromptDelegate renders prompt history rows.
type PromptDelegate struct {
	Theme *Theme
}

// Height implements list.ItemDelegate.
func (d PromptDelegate) Height() int { return 1 }

// Spacing implements list.ItemDelegate.
func (d PromptDelegate) Spacing() int { return 0 }

// Update implements list.ItemDelegate.
func (d PromptDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate.
func (d PromptDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(PromptItem)
	if !ok {
		return
	}

	text := strings.ReplaceAll(pi.Record.Text, "\n", " ")
	if len(text) > maxPromptPreview {
		text = text[:maxPromptPreview-1] + "…"
	}

	mode := "new"
	if pi.Record.Mode == entity.PromptReplyToAll {
		mode = "reply"
	}
	when := pi.Record.SubmittedAt.Local().Format("Jan 02 15:04")
	line := fmt.Sprintf("%s  %-5s  %s", when, mode, text)

	if index == m.Index() {
		fmt.Fprint(w, d.Theme.Selected.Render("> "+line))
		return
	}
	fmt.Fprint(w, d.Theme.Item.Render(line))
}

// FormatPromptTime renders a record timestamp for plain output.
func FormatPromptTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
