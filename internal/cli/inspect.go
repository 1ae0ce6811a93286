package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tidytree/pkg/export"
)

// inspectCommand creates the inspect command for browsing computed layouts.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout in the terminal",
		Long: `Browse a computed layout in the terminal.

The inspect command reads a layout.json file (produced by 'layout' or
'render -f json') and shows every placed node with its position and size.
By default it opens an interactive list; --plain prints the table and exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the node table without the interactive UI")

	return cmd
}

func (c *CLI) runInspect(input string, plain bool) error {
	l, err := export.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	rows := buildNodeRows(l)

	if plain {
		printKeyValue("Blocks", fmt.Sprintf("%d", len(l.Blocks)))
		printKeyValue("Bounds", fmt.Sprintf("%.1f x %.1f", l.Width, l.Height))
		printNewline()
		for _, r := range rows {
			fmt.Println(r.plainLine())
		}
		return nil
	}

	model := newNodeListModel(input, rows)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}

// =============================================================================
// Node Rows
// =============================================================================

// nodeRow is one display line of the inspector.
type nodeRow struct {
	depth  int
	label  string
	x, y   float64
	w, h   float64
	leaves int
}

func (r nodeRow) plainLine() string {
	return fmt.Sprintf("%s%-24s x=%-9.1f y=%-9.1f %g x %g",
		strings.Repeat("  ", r.depth), r.label, r.x, r.y, r.w, r.h)
}

// buildNodeRows flattens layout blocks into indented display rows.
// Blocks arrive in document order with parents before children, so depths
// resolve in one pass.
func buildNodeRows(l export.Layout) []nodeRow {
	depths := make([]int, len(l.Blocks))
	leaves := make([]int, len(l.Blocks))
	for i, b := range l.Blocks {
		if b.Parent >= 0 {
			depths[i] = depths[b.Parent] + 1
		}
	}
	for i := len(l.Blocks) - 1; i >= 0; i-- {
		if leaves[i] == 0 {
			leaves[i] = 1
		}
		if p := l.Blocks[i].Parent; p >= 0 {
			leaves[p] += leaves[i]
		}
	}

	rows := make([]nodeRow, len(l.Blocks))
	for i, b := range l.Blocks {
		label := b.Label
		if label == "" {
			label = fmt.Sprintf("#%d", b.ID)
		}
		rows[i] = nodeRow{
			depth:  depths[i],
			label:  label,
			x:      b.X,
			y:      b.Y,
			w:      b.Width,
			h:      b.Height,
			leaves: leaves[i],
		}
	}
	return rows
}

// =============================================================================
// NodeListModel - Interactive layout browser
// =============================================================================

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// NodeListModel is the bubbletea model for browsing placed nodes.
type NodeListModel struct {
	Title  string
	Rows   []nodeRow
	Cursor int
	Height int
	Offset int
}

// newNodeListModel creates a node list model for the given layout rows.
func newNodeListModel(title string, rows []nodeRow) NodeListModel {
	return NodeListModel{
		Title:  title,
		Rows:   rows,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor, m.Offset = 0, 0
		case "G":
			m.Cursor = len(m.Rows) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout " + m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%s%-24s", cursor, strings.Repeat("  ", r.depth), r.label)
		b.WriteString(style.Render(line))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  (%.1f, %.1f)  %g x %g", r.x, r.y, r.w, r.h)))
		b.WriteString("\n")
	}

	if sel := m.Cursor; sel < len(m.Rows) {
		r := m.Rows[sel]
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("subtree leaves: %d", r.leaves)))
		b.WriteString("\n")
	}

	return b.String()
}
