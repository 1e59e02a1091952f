// Package viewer is a terminal model that shows a highlighted source file.
// Only the rows on screen, plus a short lead-in, are tokenized per frame.
package viewer

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/prism/internal/highlight"
	"github.com/zjrosen/prism/internal/keys"
	"github.com/zjrosen/prism/internal/lexer"
	"github.com/zjrosen/prism/internal/log"
	"github.com/zjrosen/prism/internal/pubsub"
	"github.com/zjrosen/prism/internal/theme"
	"github.com/zjrosen/prism/internal/watcher"
)

// ContentMsg replaces the displayed text, e.g. after the file changed.
type ContentMsg struct {
	Text string
}

// Config configures a viewer.
type Config struct {
	// Title is shown in the header, usually the file path.
	Title    string
	Text     string
	Language string
	Theme    theme.Name
	// Palettes colors the view. Nil uses the built-in palettes.
	Palettes theme.Palettes
	// TabWidth expands tabs; non-positive values keep them as-is.
	TabWidth      int
	LineNumbers   bool
	CaseSensitive bool
	// Highlighter tokenizes visible rows. Nil uses the default tokenizer.
	Highlighter *highlight.Highlighter
	// Reloads, when set, replaces the text on every reload event.
	Reloads pubsub.Subscriber[watcher.Content]
}

// Model holds the viewer state.
type Model struct {
	title       string
	language    string
	theme       theme.Name
	palettes    theme.Palettes
	tabWidth    int
	lineNumbers bool
	highlighter *highlight.Highlighter
	reloads     *pubsub.Listener[watcher.Content]

	lines  []string
	offset int
	width  int
	height int

	search        string
	caseSensitive bool
	searching     bool
	input         textinput.Model
	showHelp      bool
	status        string
}

// New creates a viewer from cfg.
func New(cfg Config) Model {
	input := textinput.New()
	input.Prompt = "/"
	input.CharLimit = 256

	hl := cfg.Highlighter
	if hl == nil {
		hl = highlight.New(nil)
	}

	m := Model{
		title:         cfg.Title,
		language:      cfg.Language,
		theme:         cfg.Palettes.Get(cfg.Theme).Name,
		palettes:      cfg.Palettes,
		tabWidth:      cfg.TabWidth,
		lineNumbers:   cfg.LineNumbers,
		caseSensitive: cfg.CaseSensitive,
		highlighter:   hl,
		input:         input,
	}
	if cfg.Reloads != nil {
		m.reloads = pubsub.NewListener(context.Background(), cfg.Reloads)
	}
	return m.SetText(cfg.Text)
}

// SetText replaces the content, keeping the scroll position when possible.
func (m Model) SetText(text string) Model {
	m.lines = splitLines(text, m.tabWidth)
	m.offset = m.clampOffset(m.offset)
	return m
}

// SetSize sets the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.offset = m.clampOffset(m.offset)
	return m
}

// Offset returns the index of the first visible line.
func (m Model) Offset() int {
	return m.offset
}

// Theme returns the active theme.
func (m Model) Theme() theme.Name {
	return m.theme
}

// Search returns the active search term and whether it is case sensitive.
func (m Model) Search() (string, bool) {
	return m.search, m.caseSensitive
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searching
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) listen() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	return m.reloads.Listen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case ContentMsg:
		log.Debug(log.CatViewer, "content replaced", "bytes", len(msg.Text))
		return m.SetText(msg.Text), nil
	case pubsub.Event[watcher.Content]:
		if msg.Type == pubsub.FailedEvent {
			m.status = fmt.Sprintf("reload failed: %v", msg.Payload.Err)
			return m, m.listen()
		}
		log.Debug(log.CatViewer, "file reloaded", "path", msg.Payload.Path, "bytes", len(msg.Payload.Text))
		m.status = ""
		return m.SetText(msg.Payload.Text), m.listen()
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, keys.Viewer.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Viewer.Up):
		m.offset = m.clampOffset(m.offset - 1)
	case key.Matches(msg, keys.Viewer.Down):
		m.offset = m.clampOffset(m.offset + 1)
	case key.Matches(msg, keys.Viewer.PageUp):
		m.offset = m.clampOffset(m.offset - m.bodyHeight())
	case key.Matches(msg, keys.Viewer.PageDown):
		m.offset = m.clampOffset(m.offset + m.bodyHeight())
	case key.Matches(msg, keys.Viewer.Top):
		m.offset = 0
	case key.Matches(msg, keys.Viewer.Bottom):
		m.offset = m.maxOffset()
	case key.Matches(msg, keys.Viewer.Search):
		m.searching = true
		m.input.SetValue(m.search)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, keys.Viewer.ToggleCase):
		m.caseSensitive = !m.caseSensitive
	case key.Matches(msg, keys.Viewer.Clear):
		m.search = ""
	case key.Matches(msg, keys.Viewer.CycleTheme):
		i := slices.Index(theme.Names, m.theme)
		m.theme = theme.Names[(i+1)%len(theme.Names)]
	case key.Matches(msg, keys.Viewer.LineNumbers):
		m.lineNumbers = !m.lineNumbers
	case key.Matches(msg, keys.Viewer.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.SearchInput.Submit):
		m.searching = false
		m.input.Blur()
		m.search = m.input.Value()
		m = m.jumpToMatch()
		return m, nil
	case key.Matches(msg, keys.SearchInput.Cancel):
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// jumpToMatch scrolls to the first line at or after the current offset
// containing the search term, wrapping to the top.
func (m Model) jumpToMatch() Model {
	search, err := highlight.NewSearch(m.search, m.caseSensitive)
	if err != nil || !search.Active() {
		return m
	}

	n := len(m.lines)
	for i := range n {
		idx := (m.offset + i) % n
		if len(search.Find(m.lines[idx])) > 0 {
			m.offset = m.clampOffset(idx)
			return m
		}
	}
	m.status = fmt.Sprintf("no match for %q", m.search)
	return m
}

func (m Model) bodyHeight() int {
	// Header and footer take a row each.
	return max(1, m.height-2)
}

func (m Model) maxOffset() int {
	return max(0, len(m.lines)-m.bodyHeight())
}

func (m Model) clampOffset(offset int) int {
	return max(0, min(offset, m.maxOffset()))
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// View renders the viewer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	body := m.renderBody()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	parts := []string{m.title, lexer.ParseLanguage(m.language).String(), string(m.theme)}
	if m.search != "" {
		mode := "aA"
		if m.caseSensitive {
			mode = "Aa"
		}
		parts = append(parts, fmt.Sprintf("/%s [%s]", m.search, mode))
	}
	return ansi.Truncate(headerStyle.Render(strings.Join(parts, "  ")), m.width, "…")
}

func (m Model) renderFooter() string {
	if m.searching {
		return ansi.Truncate(m.input.View(), m.width, "")
	}
	if m.status != "" {
		return ansi.Truncate(mutedStyle.Render(m.status), m.width, "…")
	}
	if m.showHelp {
		return ansi.Truncate(mutedStyle.Render(helpLine(keys.Viewer.FullHelp())), m.width, "…")
	}

	pos := fmt.Sprintf("%d-%d/%d", m.offset+1, min(len(m.lines), m.offset+m.bodyHeight()), len(m.lines))
	if len(m.lines) == 0 {
		pos = "empty"
	}
	short := helpLine([][]key.Binding{keys.Viewer.ShortHelp()})
	return ansi.Truncate(mutedStyle.Render(pos+"  "+short), m.width, "…")
}

func helpLine(groups [][]key.Binding) string {
	var parts []string
	for _, group := range groups {
		for _, b := range group {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
	}
	return strings.Join(parts, " · ")
}

// renderBody tokenizes the visible window and renders it row by row.
func (m Model) renderBody() string {
	height := m.bodyHeight()
	rows := m.visibleRows(height)
	for len(rows) < height {
		rows = append(rows, "")
	}

	palette := m.palettes.Get(m.theme)
	track := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Fallback)).Faint(true)
	thumb := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Fallback))
	bar := renderScrollbar(len(m.lines), height, m.offset, track, thumb)

	contentWidth := max(1, m.width-1)
	for i, row := range rows {
		rows[i] = ansi.Truncate(row, contentWidth, "")
		if pad := contentWidth - ansi.StringWidth(rows[i]); pad > 0 {
			rows[i] += strings.Repeat(" ", pad)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), bar)
}

// visibleRows returns the rendered rows from offset, at most height of them.
func (m Model) visibleRows(height int) []string {
	if len(m.lines) == 0 {
		return nil
	}

	start := max(0, m.offset-windowBuffer)
	text, first := Window(m.lines, start, m.offset-start+height)

	lineCount := lexer.LineCount(text)
	var lines [][]lexer.Token
	if highlight.IsRaw(m.language) {
		lines = lexer.ByLine(lexer.Lines(text), lineCount)
	} else {
		lines = lexer.ByLine(m.highlighter.Tokenize(text, m.language), lineCount)
	}

	skip := m.offset - first
	if skip >= len(lines) {
		return nil
	}
	rendered := highlight.RenderLinesANSI(lines[skip:], highlight.Options{
		Search:        m.search,
		CaseSensitive: m.caseSensitive,
		Theme:         m.theme,
		Palettes:      m.palettes,
	})

	gutterWidth := len(strconv.Itoa(len(m.lines)))
	rows := make([]string, 0, min(height, len(rendered)))
	for i, line := range rendered {
		if i == height {
			break
		}
		if m.lineNumbers {
			line = mutedStyle.Render(fmt.Sprintf("%*d ", gutterWidth, m.offset+i+1)) + line
		}
		rows = append(rows, line)
	}
	return rows
}
