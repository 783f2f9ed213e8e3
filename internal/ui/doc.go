// Package ui contains the Bubble Tea program behind the emoji picker popup.
// Model focuses on message orchestration while dedicated files own
// navigation, text input, mouse handling, modals and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. When a modal is
//     open (custom item form, delete confirmation, skin tone selector) key
//     presses go to it first; everything else is routed through a typed
//     handler registry so each tea.Msg is handled by one focused function.
//   - Preference mutations and clipboard delivery run as commands on the
//     internal/ui/command bus and report back as mutationMsg or deliveredMsg.
//
// State ownership:
//   - The single grid level lives in internal/ui/state.Level, which tracks the
//     tab, category, query, filtered items, cursor and scroll offset.
//   - Catalog data lives in internal/state.CatalogStore; preferences live
//     behind internal/prefs.Service.
//
// Rendering:
//   - refresh stamps each render with a token. Category loads run in the
//     background and only the completion carrying the latest token rebuilds
//     the grid, so a slow load never overwrites a newer view.
//   - relayout recomputes the visible window through internal/render, so only
//     the rows on screen are decorated.
//
// Backend interactions:
//   - A backend.Watcher polls the shared preference store and the target pane.
//     Changes written by another popup re-render the grid; a closed pane is
//     surfaced in the status line.
package ui
