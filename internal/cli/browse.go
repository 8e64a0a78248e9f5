package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/doctree"
	pkgio "github.com/matzehuels/doctree/pkg/io"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

var (
	browseSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	browseMatchStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// browseChrome is the number of lines used by the header and footer.
const browseChrome = 4

// =============================================================================
// ReportViewModel - Scrollable report viewer
// =============================================================================

// ReportViewModel is the bubbletea model for paging through a report.
// Pressing "/" starts a search; "n" jumps to the next matching line.
type ReportViewModel struct {
	Title  string
	Lines  []string
	Offset int
	Height int

	query     string
	searching bool
}

// NewReportViewModel creates a viewer for r.
func NewReportViewModel(r *doctree.Report) ReportViewModel {
	return ReportViewModel{
		Title:  r.Title,
		Lines:  strings.Split(r.Text(), "\n"),
		Height: 20,
	}
}

func (m ReportViewModel) Init() tea.Cmd {
	return nil
}

func (m ReportViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup", "b":
			m.scroll(-m.Height)
		case "pgdown", "f", " ":
			m.scroll(m.Height)
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		case "/":
			m.searching = true
			m.query = ""
		case "n":
			m.next()
		case "s":
			m.jumpTo("=== STATISTICS ===")
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - browseChrome
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll(0)
	}
	return m, nil
}

func (m ReportViewModel) updateSearch(msg tea.KeyMsg) ReportViewModel {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.next()
	case tea.KeyEsc, tea.KeyCtrlC:
		m.searching = false
		m.query = ""
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
	}
	return m
}

func (m *ReportViewModel) scroll(delta int) {
	m.Offset += delta
	if m.Offset > m.maxOffset() {
		m.Offset = m.maxOffset()
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m ReportViewModel) maxOffset() int {
	if n := len(m.Lines) - m.Height; n > 0 {
		return n
	}
	return 0
}

// next moves the first line below the top of the view that contains the
// query to the top, wrapping around.
func (m *ReportViewModel) next() {
	if m.query == "" {
		return
	}
	for i := 1; i <= len(m.Lines); i++ {
		idx := (m.Offset + i) % len(m.Lines)
		if strings.Contains(m.Lines[idx], m.query) {
			m.Offset = idx
			m.scroll(0)
			return
		}
	}
}

func (m *ReportViewModel) jumpTo(line string) {
	for i, l := range m.Lines {
		if l == line {
			m.Offset = i
			m.scroll(0)
			return
		}
	}
}

func (m ReportViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  space/b page  / search  n next  s stats  q quit"))
	b.WriteString("\n")

	end := m.Offset + m.Height
	if end > len(m.Lines) {
		end = len(m.Lines)
	}
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(m.styleLine(line))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(m.Lines))))
	if m.searching {
		b.WriteString("  /" + m.query)
	} else if m.query != "" {
		b.WriteString(StyleDim.Render("  search: " + m.query))
	}
	return b.String()
}

func (m ReportViewModel) styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---"):
		return browseSectionStyle.Render(line)
	case strings.Contains(line, "Error exploring node:"):
		return browseErrorStyle.Render(line)
	case m.query != "" && strings.Contains(line, m.query):
		return browseMatchStyle.Render(line)
	}
	return line
}

// =============================================================================
// Command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Page through the tree report in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Input = args[0]
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.MaxDepth = maxDepth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			doc, err := pkgio.ImportJSON(cfg.Input)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
			popts := cfg.PipelineOptions()
			popts.Formats = []string{pipeline.FormatText}
			result, err := runner.ExecuteDocument(ctx, doc, popts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewReportViewModel(result.Report), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "deepest nesting level to explore")
	return cmd
}
