package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/services"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	session *services.SessionService
	catalog *services.CatalogService
	account *services.AccountService

	view        ViewState
	width       int
	height      int
	pageSize    int
	courseList  list.Model
	input       textinput.Model
	searching   bool
	suggestions []models.Course
	watcher     boundaryWatcher
	detail      *models.CourseData
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

type pageLoadedMsg struct {
	snap services.CatalogSnapshot
}

type detailLoadedMsg struct {
	data *models.CourseData
	err  error
}

type checkoutMsg struct {
	url string
	err error
}

// NewModel creates a new TUI model with the provided dependencies. pageSize
// is the backend's catalog page size and bounds the search suggestion list.
func NewModel(ctx context.Context, session *services.SessionService, catalog *services.CatalogService, account *services.AccountService, pageSize int) *Model {
	if pageSize <= 0 {
		pageSize = 6
	}

	input := textinput.New()
	input.Placeholder = "Search courses..."
	input.CharLimit = 80

	courseList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	courseList.Title = "Available Courses"
	courseList.SetShowHelp(false)
	courseList.SetFilteringEnabled(false)

	return &Model{
		ctx:        ctx,
		session:    session,
		catalog:    catalog,
		account:    account,
		view:       BrowseView,
		pageSize:   pageSize,
		courseList: courseList,
		input:      input,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init kicks off the first catalog page fetch.
func (m *Model) Init() tea.Cmd {
	return m.fetchNextPage()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.courseList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case pageLoadedMsg:
		return m.applySnapshot(msg.snap)

	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.data
		m.view = DetailView
		return m, nil

	case checkoutMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "checkout opened in browser"
		if err := shared.OpenBrowser(msg.url); err != nil {
			m.status = fmt.Sprintf("open %s to complete enrollment", msg.url)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	default:
		return m.renderBrowse()
	}
}

// applySnapshot rebuilds the list from the synchronizer state and rebinds
// the boundary watcher to the new last item.
func (m *Model) applySnapshot(snap services.CatalogSnapshot) (tea.Model, tea.Cmd) {
	m.err = snap.LastError

	items := make([]list.Item, len(snap.Items))
	for i, course := range snap.Items {
		items[i] = courseItem{course: course}
	}
	m.courseList.SetItems(items)

	if len(snap.Items) > 0 {
		m.watcher.Rebind(snap.Items[len(snap.Items)-1].ID)
	} else {
		m.watcher.Disconnect()
	}

	switch {
	case snap.LastError != nil:
		m.status = "fetch failed; press r to retry"
	case snap.HasMore:
		m.status = fmt.Sprintf("%d of %d courses", len(snap.Items), snap.Total)
	default:
		m.status = fmt.Sprintf("all %d courses loaded", len(snap.Items))
	}

	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.retry):
		if m.err != nil {
			return m, m.fetchNextPage()
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.courseList.SelectedItem().(courseItem); ok {
			return m, m.fetchDetail(item.course.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.enroll):
		if item, ok := m.courseList.SelectedItem().(courseItem); ok {
			return m, m.startCheckout(item.course)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.courseList, cmd = m.courseList.Update(msg)

	// Selection landing on the sentinel is the boundary signal.
	if item, ok := m.courseList.SelectedItem().(courseItem); ok {
		snap := m.catalog.Snapshot()
		if m.watcher.Observe(item.course.ID, snap.HasMore, snap.Fetching) {
			return m, tea.Batch(cmd, m.fetchNextPage())
		}
	}

	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.suggestions = nil
		m.input.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.input.Value())
		m.searching = false
		m.suggestions = nil
		m.input.Blur()
		return m, m.commitSearch(query)
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Best-effort suggestions over loaded items only; committing the query
	// is what triggers the server round-trip. At most one page worth.
	m.suggestions = m.catalog.Suggest(m.input.Value())
	if len(m.suggestions) > m.pageSize {
		m.suggestions = m.suggestions[:m.pageSize]
	}

	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.enroll):
		if m.detail != nil {
			return m, m.startCheckout(m.detail.Course)
		}
	}
	return m, nil
}

func (m *Model) fetchNextPage() tea.Cmd {
	return func() tea.Msg {
		m.catalog.FetchNextPage(m.ctx)
		return pageLoadedMsg{snap: m.catalog.Snapshot()}
	}
}

func (m *Model) commitSearch(query string) tea.Cmd {
	return func() tea.Msg {
		m.catalog.Search(m.ctx, query)
		return pageLoadedMsg{snap: m.catalog.Snapshot()}
	}
}

func (m *Model) fetchDetail(courseID int) tea.Cmd {
	return func() tea.Msg {
		data, err := m.account.CourseData(m.ctx, courseID)
		return detailLoadedMsg{data: data, err: err}
	}
}

func (m *Model) startCheckout(course models.Course) tea.Cmd {
	user := m.session.CurrentUser()
	if user == nil {
		m.status = "log in to enroll in courses"
		return nil
	}
	if course.IsEnrolled {
		m.status = "already enrolled"
		return nil
	}

	return func() tea.Msg {
		result, err := m.account.ProcessPayment(m.ctx, course, user.ID)
		if err != nil {
			return checkoutMsg{err: err}
		}
		return checkoutMsg{url: result.URL}
	}
}

func (m *Model) renderBrowse() string {
	var b strings.Builder

	if m.searching {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		for _, course := range m.suggestions {
			b.WriteString(styles.help.Render(fmt.Sprintf("  %s", course.Title)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else if snap := m.catalog.Snapshot(); snap.Query != "" {
		b.WriteString(styles.title.Render(fmt.Sprintf("Search: %q", snap.Query)))
		b.WriteString("\n")
	}

	b.WriteString(m.courseList.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(styles.help.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No course selected\n\nPress esc to go back")
	}

	course := m.detail.Course

	var b strings.Builder
	b.WriteString(styles.title.Render(course.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Category: %s\nInstructor: %s\nPrice: $%s\n", course.Category, course.Instructor, course.Price))
	if course.Description != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", course.Description))
	}

	if len(m.detail.Videos) > 0 {
		b.WriteString("\nLectures:\n")
		for i, video := range m.detail.Videos {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, video.Title))
		}
	}

	helpKeys := []key.Binding{m.keys.enroll, m.keys.back, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))

	return b.String()
}
