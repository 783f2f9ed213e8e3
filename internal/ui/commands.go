package ui

import (
	"context"

	"github.com/atomicstack/tmux-emoji-popup/internal/catalog"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/insert"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
	"github.com/atomicstack/tmux-emoji-popup/internal/prefs"
	"github.com/atomicstack/tmux-emoji-popup/internal/skintone"
	"github.com/atomicstack/tmux-emoji-popup/internal/tmux"
	"github.com/atomicstack/tmux-emoji-popup/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// Deliverer sends the chosen text to the clipboard and the target pane.
type Deliverer interface {
	Deliver(ctx context.Context, text string) insert.Outcome
}

var displayNotice = tmux.DisplayNotice

// preloadCategories are fetched at startup so the first category switch is
// instant.
var preloadCategories = []string{"표정", "하트"}

// renderReadyMsg reports that the loads a render waited on have settled.
type renderReadyMsg struct {
	token uint64
}

// categoriesLoadedMsg reports a background preload.
type categoriesLoadedMsg struct {
	labels []string
}

type kaomojiLoadedMsg struct {
	items []catalog.Item
	err   error
}

type deliveredMsg struct {
	outcome   insert.Outcome
	recentErr error
}

// mutationMsg reports a preference change made by a background command.
type mutationMsg struct {
	info     string
	err      error
	render   bool
	theme    bool
	language bool
	copy     string
}

func (m *Model) startupCmd() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return tea.Batch(
		m.loadKaomojiCmd(),
		func() tea.Msg {
			for _, label := range preloadCategories {
				loader.EnsureCategoryLoaded(ctx, label)
			}
			return categoriesLoadedMsg{labels: preloadCategories}
		},
	)
}

// loadKaomojiCmd fetches the kaomoji list unless a fetch is in flight.
func (m *Model) loadKaomojiCmd() tea.Cmd {
	if m.kaomojiPending {
		return nil
	}
	m.kaomojiPending = true
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		items, err := loader.LoadKaomoji(ctx)
		return kaomojiLoadedMsg{items: items, err: err}
	}
}

func (m *Model) handleKaomojiLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(kaomojiLoadedMsg)
	if !ok {
		return nil
	}
	m.kaomojiPending = false
	if loaded.err != nil {
		logging.Error(loaded.err)
		m.errMsg = loaded.err.Error()
		return nil
	}
	m.kaomojiLoaded = true
	m.catalog.SetKaomoji(loaded.items)
	m.rebuild()
	return nil
}

func (m *Model) handleCategoriesLoadedMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(categoriesLoadedMsg); !ok {
		return nil
	}
	m.rebuild()
	return nil
}

func (m *Model) copyCmd(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	m.loading = true
	m.pendingLabel = text
	m.errMsg = ""
	deliverer, svc := m.deliverer, m.prefs
	return m.bus.Execute(command.Request{ID: "copy", Label: text, Handler: func(ctx context.Context) tea.Msg {
		out := deliverer.Deliver(ctx, text)
		var recentErr error
		if out.Err() == nil {
			recentErr = svc.AddToRecent(ctx, text)
		}
		return deliveredMsg{outcome: out, recentErr: recentErr}
	}})
}

func (m *Model) handleDeliveredMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(deliveredMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingLabel = ""
	out := result.outcome
	if err := out.Err(); err != nil {
		m.errMsg = err.Error()
		m.forceClearInfo()
		events.Action.Error(err)
		return nil
	}
	lang := m.language()
	info := i18n.T(lang, "toast.copied")
	switch {
	case out.Fallback():
		info = i18n.T(lang, "toast.fallback")
	case out.Inserted:
		info = i18n.T(lang, "toast.inserted")
	}
	if result.recentErr != nil {
		logging.Error(result.recentErr)
	}
	events.Action.Success(info)
	if m.keepOpen {
		m.setInfoFor(info, copyToastTTL)
		return m.refresh()
	}
	if out.Fallback() {
		m.notify(info)
	}
	return tea.Quit
}

// notify shows message in the tmux status line once the popup has closed.
func (m *Model) notify(message string) {
	if m.socket == "" {
		return
	}
	if err := displayNotice(m.socket, "", message); err != nil {
		logging.Error(err)
	}
}

func (m *Model) toggleFavoriteCmd(char string) tea.Cmd {
	svc, lang := m.prefs, m.language()
	return m.bus.Execute(command.Request{ID: "favorite", Label: char, Handler: func(ctx context.Context) tea.Msg {
		added, err := svc.ToggleFavorite(ctx, char)
		info := i18n.T(lang, "toast.unfavorite")
		if added {
			info = i18n.T(lang, "toast.favorite")
		}
		return mutationMsg{info: info, err: err, render: true}
	}})
}

func (m *Model) saveCustomCmd(kaomoji bool, oldChar string, item catalog.Item) tea.Cmd {
	svc, lang := m.prefs, m.language()
	return m.bus.Execute(command.Request{ID: "custom:save", Label: item.Char, Handler: func(ctx context.Context) tea.Msg {
		var err error
		switch {
		case oldChar != "":
			err = svc.UpdateCustom(ctx, kaomoji, oldChar, item)
		case kaomoji:
			err = svc.SaveCustomKaomoji(ctx, item)
		default:
			err = svc.SaveCustomEmoji(ctx, item)
		}
		return mutationMsg{info: i18n.T(lang, "toast.saved"), err: err, render: true}
	}})
}

func (m *Model) deleteCustomCmd(kaomoji bool, char string) tea.Cmd {
	svc, lang := m.prefs, m.language()
	return m.bus.Execute(command.Request{ID: "custom:delete", Label: char, Handler: func(ctx context.Context) tea.Msg {
		err := svc.DeleteCustom(ctx, kaomoji, char)
		return mutationMsg{info: i18n.T(lang, "toast.deleted"), err: err, render: true}
	}})
}

func (m *Model) pickToneCmd(base string, tone skintone.Tone) tea.Cmd {
	svc := m.prefs
	return m.bus.Execute(command.Request{ID: "skintone:item", Label: base, Handler: func(ctx context.Context) tea.Msg {
		err := svc.SetItemSkinTone(ctx, base, tone)
		return mutationMsg{err: err, render: true, copy: skintone.Apply(base, tone)}
	}})
}

func (m *Model) defaultToneCmd(tone skintone.Tone) tea.Cmd {
	svc, lang := m.prefs, m.language()
	return m.bus.Execute(command.Request{ID: "skintone:default", Label: string(tone), Handler: func(ctx context.Context) tea.Msg {
		err := svc.SetSkinTonePreference(ctx, tone)
		return mutationMsg{info: i18n.T(lang, "toast.tonedefault"), err: err, render: true}
	}})
}

func (m *Model) toggleThemeCmd() tea.Cmd {
	svc := m.prefs
	return m.bus.Execute(command.Request{ID: "theme", Label: "theme", Handler: func(ctx context.Context) tea.Msg {
		_, err := svc.ToggleTheme(ctx)
		return mutationMsg{err: err, theme: true}
	}})
}

func (m *Model) toggleLanguageCmd() tea.Cmd {
	svc := m.prefs
	return m.bus.Execute(command.Request{ID: "language", Label: "language", Handler: func(ctx context.Context) tea.Msg {
		_, err := svc.ToggleLanguage(ctx)
		return mutationMsg{err: err, language: true, render: true}
	}})
}

func (m *Model) handleMutationMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(mutationMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		events.Action.Error(result.err)
		m.forceClearInfo()
		m.errMsg = i18n.T(m.language(), "toast.storage")
		if _, invalid := result.err.(*prefs.ValidationError); invalid {
			m.errMsg = result.err.Error()
		}
	} else {
		m.errMsg = ""
		if result.info != "" {
			m.setInfoFor(result.info, copyToastTTL)
		}
	}
	if result.theme {
		m.applyTheme()
	}
	var cmds []tea.Cmd
	if result.render || result.language {
		cmds = append(cmds, m.refresh())
	}
	if result.copy != "" {
		cmds = append(cmds, m.copyCmd(result.copy))
	}
	return tea.Batch(cmds...)
}
