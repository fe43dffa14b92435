// Package ui implements an interactive terminal catalog browser using
// bubbletea's Elm architecture.
//
// The TUI provides two views:
//  1. [BrowseView] : the incrementally-loaded course list with a search box
//  2. [DetailView] : one course with its lecture videos
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Moving the selection onto the last loaded course is the boundary signal:
// the boundaryWatcher fires at most once per sentinel, requests the next
// page only when more pages exist and no fetch is in flight, and is rebound
// each time a landed page changes which item is last. Typing in the search
// box filters suggestions from already-loaded items; only committing the
// query with enter reaches the server.
//
// Keyboard navigation uses vim-style bindings (j/k, /, enter, esc, e, r, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
