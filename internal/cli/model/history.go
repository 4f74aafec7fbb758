// Package model provides the Bubble Tea models behind the interactive
// CLI commands.
package model

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/repository"
)

// HistoryKeyMap binds the history browser's extra keys.
type HistoryKeyMap struct {
	Copy key.Binding
	Quit key.Binding
}

// DefaultHistoryKeyMap returns the stock bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Copy: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y/enter", "copy prompt"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the interactive prompt-history browser: a filterable
// list of past submissions; the selected prompt can be copied back to the
// clipboard for resubmission.
type HistoryModel struct {
	list      list.Model
	keys      HistoryKeyMap
	theme     *styles.Theme
	status    string
	err       error
	ctx       context.Context
	prompts   repository.PromptRepository
	clipboard port.Clipboard
	limit     int
}

// NewHistoryModel builds the history browser.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, prompts repository.PromptRepository, clip port.Clipboard, limit int) HistoryModel {
	delegate := styles.PromptDelegate{Theme: theme}
	l := list.New(nil, delegate, 80, 20)
	l.Title = "Prompt History"
	l.SetShowStatusBar(false)
	l.Styles.Title = theme.Title

	return HistoryModel{
		list:      l,
		keys:      DefaultHistoryKeyMap(),
		theme:     theme,
		ctx:       ctx,
		prompts:   prompts,
		clipboard: clip,
		limit:     limit,
	}
}

type historyLoadedMsg struct {
	records []entity.PromptRecord
}

type historyErrMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

func (m HistoryModel) loadHistory() tea.Msg {
	records, err := m.prompts.Recent(m.ctx, m.limit)
	if err != nil {
		return historyErrMsg{err: err}
	}
	return historyLoadedMsg{records: records}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case historyLoadedMsg:
		items := make([]list.Item, 0, len(msg.records))
		for _, rec := range msg.records {
			items = append(items, styles.PromptItem{Record: rec})
		}
		return m, m.list.SetItems(items)

	case historyErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case copiedMsg:
		if msg.err != nil {
			m.status = m.theme.Fail.Render("copy failed: " + msg.err.Error())
		} else {
			m.status = m.theme.OK.Render("copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			return m, m.copySelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m HistoryModel) copySelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(styles.PromptItem)
	if !ok {
		return nil
	}
	if m.clipboard == nil || !m.clipboard.Available() {
		return func() tea.Msg {
			return copiedMsg{err: errNoClipboard}
		}
	}
	return func() tea.Msg {
		return copiedMsg{err: m.clipboard.Copy(m.ctx, item.Record.Text)}
	}
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if m.err != nil {
		return m.theme.Fail.Render("history unavailable: "+m.err.Error()) + "\n"
	}
	view := m.list.View()
	if m.status != "" {
		view += "\n" + m.status
	}
	return view
}

// Err returns the terminal error, if the model quit because of one.
func (m HistoryModel) Err() error {
	return m.err
}
