package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/stretchr/testify/assert"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

func newPromptList(records ...entity.PromptRecord) list.Model {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = PromptItem{Record: rec}
	}
	m := list.New(items, PromptDelegate{Theme: NewTheme()}, 120, 20)
	return m
}

func TestPromptItemFilterValue(t *testing.T) {
	item := PromptItem{Record: entity.PromptRecord{Text: "compare rust and go"}}
	assert.Equal(t, "compare rust and go", item.FilterValue())
}

func TestPromptDelegateRender(t *testing.T) {
	submitted := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	m := newPromptList(
		entity.PromptRecord{Text: "first\nline two", Mode: entity.PromptNewThread, SubmittedAt: submitted},
		entity.PromptRecord{Text: "second", Mode: entity.PromptReplyToAll, SubmittedAt: submitted},
	)

	var selected strings.Builder
	PromptDelegate{Theme: NewTheme()}.Render(&selected, m, 0, m.Items()[0])
	assert.Contains(t, selected.String(), "> ")
	assert.Contains(t, selected.String(), "first line two", "newlines flatten to spaces")
	assert.Contains(t, selected.String(), "new")

	var plain strings.Builder
	PromptDelegate{Theme: NewTheme()}.Render(&plain, m, 1, m.Items()[1])
	assert.NotContains(t, plain.String(), "> ")
	assert.Contains(t, plain.String(), "reply")
}

func TestPromptDelegateTruncatesLongText(t *testing.T) {
	m := newPromptList(entity.PromptRecord{
		Text:        strings.Repeat("a", 200),
		SubmittedAt: time.Now(),
	})

	var out strings.Builder
	PromptDelegate{Theme: NewTheme()}.Render(&out, m, 1, m.Items()[0])
	assert.Contains(t, out.String(), "…")
	assert.NotContains(t, out.String(), strings.Repeat("a", 100))
}
