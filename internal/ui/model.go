// Package ui implements the interactive terminal data explorer on top of
// the query layer.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jenkins-infra/plugin-modernizer-stats/internal/domain"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/query"
	"github.com/jenkins-infra/plugin-modernizer-stats/internal/recommend"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).MarginTop(1).MarginBottom(1)

	severityStyles = map[recommend.Severity]lipgloss.Style{
		recommend.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		recommend.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		recommend.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
)

// Model is the bubbletea model for the data explorer.
type Model struct {
	data     *domain.AppData
	rows     []query.Row
	filtered []query.Row

	table     table.Model
	search    textinput.Model
	searching bool

	status   query.StatusFilter
	pr       query.PRFilter
	sortKey  query.SortKey
	sortDesc bool
	page     int

	detail bool
	notice string
	width  int
	height int
}

// NewModel creates the explorer model over one loaded AppData snapshot.
func NewModel(data *domain.AppData) Model {
	columns := []table.Column{
		{Title: "Plugin", Width: 28},
		{Title: "Migrations", Width: 10},
		{Title: "Success", Width: 8},
		{Title: "Failed", Width: 8},
		{Title: "Merged PRs", Width: 10},
		{Title: "Open PRs", Width: 8},
		{Title: "Latest Recipe", Width: 30},
		{Title: "Last Active", Width: 11},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(query.PageSize+1),
	)
	s := table.DefaultStyles()
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("240")).
		Bold(true)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "plugin name or recipe"
	search.CharLimit = 64

	m := Model{
		data:    data,
		rows:    query.Rows(data),
		table:   t,
		search:  search,
		status:  query.StatusAll,
		pr:      query.PRAll,
		sortKey: query.ByPluginName,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
			default:
				m.search, cmd = m.search.Update(msg)
			}
			m.page = 0
			m.refresh()
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.notice = ""
			return m, m.search.Focus()
		case "s":
			m.status = nextStatusFilter(m.status)
			m.page = 0
			m.refresh()
		case "p":
			m.pr = nextPRFilter(m.pr)
			m.page = 0
			m.refresh()
		case "o":
			m.sortKey = nextSortKey(m.sortKey)
			m.refresh()
		case "O":
			m.sortDesc = !m.sortDesc
			m.refresh()
		case "left", "h":
			m.setPage(m.page - 1)
		case "right", "l":
			m.setPage(m.page + 1)
		case "home", "g":
			m.setPage(0)
		case "end", "G":
			m.setPage(query.TotalPages(len(m.filtered)) - 1)
		case "enter":
			m.detail = !m.detail
		case "esc":
			m.detail = false
		case "c":
			m.exportFile(query.CSVFileName, query.RowsCSV(m.filtered), nil)
		case "j":
			payload, err := query.RowsJSON(m.filtered)
			m.exportFile(query.JSONFileName, payload, err)
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the explorer.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Plugin Modernizer Stats"))
	s.WriteString("\n")

	sum := m.data.Summary
	s.WriteString(infoStyle.Render(fmt.Sprintf(
		"%d plugins | %d migrations | %.2f%% success | %d open / %d merged PRs",
		sum.TotalPlugins, sum.TotalMigrations, sum.SuccessRate, sum.OpenPRs, sum.MergedPRs)))
	s.WriteString("\n")

	if m.searching {
		s.WriteString("Search: " + m.search.View())
	} else {
		search := m.search.Value()
		if search == "" {
			search = "(none)"
		}
		s.WriteString(mutedStyle.Render(fmt.Sprintf(
			"search: %s | status: %s | prs: %s | sort: %s %s",
			search, m.status, m.pr, m.sortKey, sortDirLabel(m.sortDesc))))
	}
	s.WriteString("\n\n")

	if len(m.filtered) == 0 {
		s.WriteString(emptyStyle.Render("No rows match the current filters."))
		s.WriteString("\n")
	} else {
		s.WriteString(m.table.View())
		s.WriteString("\n")
		s.WriteString(mutedStyle.Render(m.paginationLine()))
		s.WriteString("\n")
	}

	if m.detail {
		s.WriteString(m.renderDetail())
	}

	if m.notice != "" {
		s.WriteString(noticeStyle.Render(m.notice))
		s.WriteString("\n")
	}

	s.WriteString(mutedStyle.Render(
		"/ search · s status · p prs · o/O sort · ←/→ page · enter details · c/j export · q quit"))
	return s.String()
}

// refresh recomputes the filtered row set and the visible page.
func (m *Model) refresh() {
	m.filtered = query.Sort(query.Filter(m.rows, query.Filters{
		Search: m.search.Value(),
		Status: m.status,
		PR:     m.pr,
	}), m.sortKey, m.sortDesc)

	total := query.TotalPages(len(m.filtered))
	if total == 0 {
		m.page = 0
	} else if m.page >= total {
		m.page = total - 1
	}

	pageRows := query.Page(m.filtered, m.page)
	rows := make([]table.Row, 0, len(pageRows))
	for _, r := range pageRows {
		rows = append(rows, table.Row{
			r.PluginName,
			fmt.Sprintf("%d", r.MigrationCount),
			fmt.Sprintf("%d", r.SuccessCount),
			fmt.Sprintf("%d", r.FailCount),
			fmt.Sprintf("%d", r.PRsMerged),
			fmt.Sprintf("%d", r.PRsOpen),
			r.LatestRecipe,
			r.LatestMigration,
		})
	}
	m.table.SetRows(rows)
	m.table.SetHeight(max(len(rows), 1) + 1)
}

func (m *Model) setPage(page int) {
	total := query.TotalPages(len(m.filtered))
	if total == 0 {
		return
	}
	if page < 0 {
		page = 0
	}
	if page >= total {
		page = total - 1
	}
	m.page = page
	m.refresh()
}

func (m Model) paginationLine() string {
	total := query.TotalPages(len(m.filtered))
	first := m.page*query.PageSize + 1
	last := min((m.page+1)*query.PageSize, len(m.filtered))

	var buttons []string
	for _, p := range query.PageWindow(m.page, total) {
		label := fmt.Sprintf("%d", p+1)
		if p == m.page {
			label = "[" + label + "]"
		}
		buttons = append(buttons, label)
	}
	return fmt.Sprintf("Showing %d-%d of %d plugins · pages %s",
		first, last, len(m.filtered), strings.Join(buttons, " "))
}

// renderDetail shows the selected plugin's recommended next steps.
func (m Model) renderDetail() string {
	cursor := m.table.Cursor()
	pageRows := query.Page(m.filtered, m.page)
	if cursor < 0 || cursor >= len(pageRows) {
		return ""
	}

	var s strings.Builder
	name := pageRows[cursor].PluginName
	plugin := query.PluginByName(m.data, name)
	if plugin == nil {
		s.WriteString(emptyStyle.Render(fmt.Sprintf("Plugin %q was not found in the dataset.", name)))
		s.WriteString("\n")
		return s.String()
	}

	s.WriteString(infoStyle.Render(fmt.Sprintf("Recommended next steps for %s:", name)))
	s.WriteString("\n")
	steps := recommend.Steps(plugin)
	if len(steps) == 0 {
		s.WriteString(mutedStyle.Render("  no recommendations"))
		s.WriteString("\n")
		return s.String()
	}
	for _, step := range steps {
		style := severityStyles[step.Severity]
		line := fmt.Sprintf("  %-6s %s", strings.ToUpper(string(step.Severity)), step.Text)
		if step.URL != "" {
			line += " (" + step.URL + ")"
		}
		s.WriteString(style.Render(line))
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) exportFile(name string, payload []byte, err error) {
	if err == nil {
		err = os.WriteFile(name, payload, 0o644)
	}
	if err != nil {
		m.notice = fmt.Sprintf("export failed: %v", err)
		return
	}
	m.notice = fmt.Sprintf("exported %d rows to %s", len(m.filtered), name)
}

func nextStatusFilter(f query.StatusFilter) query.StatusFilter {
	switch f {
	case query.StatusAll:
		return query.StatusSuccess
	case query.StatusSuccess:
		return query.StatusFail
	default:
		return query.StatusAll
	}
}

func nextPRFilter(f query.PRFilter) query.PRFilter {
	switch f {
	case query.PRAll:
		return query.PROpen
	case query.PROpen:
		return query.PRMerged
	default:
		return query.PRAll
	}
}

func nextSortKey(key query.SortKey) query.SortKey {
	for i, k := range query.SortKeys {
		if k == key {
			return query.SortKeys[(i+1)%len(query.SortKeys)]
		}
	}
	return query.ByPluginName
}

func sortDirLabel(desc bool) string {
	if desc {
		return "desc"
	}
	return "asc"
}
