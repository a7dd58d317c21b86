package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/slatedeck/slatedeck/pkg/editor"
	"github.com/slatedeck/slatedeck/pkg/slide"
)

// editCommand creates the edit command: an interactive terminal grid
// editor built on the editor session layer.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [slide.json]",
		Short: "Edit a slide's grid interactively",
		Long: `Edit a slide's grid interactively.

Keys:
  arrows / hjkl   move the cursor
  enter / space   pick up the block under the cursor, or drop it
  esc             cancel a pick-up
  x               unassign the block under the cursor
  w / W           widen / narrow the block's column span
  t / T           grow / shrink the block's row span
  u               undo the last layout change
  s               save to the slide file
  q               quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := slide.ReadSlideFile(args[0])
			if err != nil {
				return fmt.Errorf("load slide %s: %w", args[0], err)
			}

			model := newEditModel(s, args[0])
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			if m, ok := final.(editModel); ok && m.dirty {
				printWarning("Unsaved changes discarded")
				printNextStep("Reopen", "slatedeck edit "+args[0])
			}
			return nil
		},
	}
	return cmd
}

// Editor styles
var (
	editCellEmpty   = lipgloss.NewStyle().Foreground(colorDim)
	editCellBlock   = lipgloss.NewStyle().Foreground(colorWhite)
	editCellCursor  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Reverse(true)
	editCellHeld    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	editStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// editModel is the bubbletea model for the grid editor.
type editModel struct {
	ed     *editor.Editor
	path   string
	curRow int
	curCol int
	status string
	dirty  bool
}

func newEditModel(s slide.Slide, path string) editModel {
	return editModel{
		ed:     editor.New(s),
		path:   path,
		status: "ready",
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	l := m.ed.Layout()
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.curRow > 0 {
			m.curRow--
		}
	case "down", "j":
		if m.curRow < l.Rows-1 {
			m.curRow++
		}
	case "left", "h":
		if m.curCol > 0 {
			m.curCol--
		}
	case "right", "l":
		if m.curCol < l.Columns-1 {
			m.curCol++
		}

	case "enter", " ":
		m = m.pickOrDrop()
	case "esc":
		m.ed.CancelDrag()
		m.status = "pick-up cancelled"
	case "x":
		if id, ok := m.blockAtCursor(); ok {
			m.ed.Unassign(id)
			m.dirty = true
			m.status = "unassigned " + shortID(id)
		}
	case "w":
		m = m.adjustSpan(0, 1)
	case "W":
		m = m.adjustSpan(0, -1)
	case "t":
		m = m.adjustSpan(1, 0)
	case "T":
		m = m.adjustSpan(-1, 0)

	case "u":
		if m.ed.Undo() {
			m.dirty = true
			m.status = "undone"
		} else {
			m.status = "nothing to undo"
		}
	case "s":
		if err := slide.WriteSlideFile(m.ed.Slide(), m.path); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.dirty = false
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

// pickOrDrop toggles the drag state: picking up the block under the
// cursor, or dropping the held block at the cursor cell.
func (m editModel) pickOrDrop() editModel {
	if held, dragging := m.ed.Dragging(); dragging {
		ok, err := m.ed.Drop(m.curRow, m.curCol)
		switch {
		case err != nil:
			m.status = "drop failed: " + err.Error()
		case ok:
			m.dirty = true
			m.status = "placed " + shortID(held)
		default:
			m.status = "cell refused " + shortID(held)
		}
		return m
	}

	id, ok := m.blockAtCursor()
	if !ok {
		id, ok = m.nextUnplacedBlock()
	}
	if !ok {
		m.status = "nothing to pick up"
		return m
	}
	if err := m.ed.DragStart(id); err != nil {
		m.status = "pick-up failed: " + err.Error()
		return m
	}
	m.status = "holding " + shortID(id)
	return m
}

// adjustSpan grows or shrinks the span of the block under the cursor.
func (m editModel) adjustSpan(dRow, dCol int) editModel {
	id, ok := m.blockAtCursor()
	if !ok {
		m.status = "no block under cursor"
		return m
	}

	s := m.ed.Layout().SpanOf(id)
	rows, cols := s.RowSpan+dRow, s.ColumnSpan+dCol
	if rows < 1 || cols < 1 {
		m.status = "span is already minimal"
		return m
	}

	applied, err := m.ed.SetSpan(id, rows, cols)
	switch {
	case err != nil:
		m.status = "span failed: " + err.Error()
	case applied:
		m.dirty = true
		m.status = fmt.Sprintf("span %dx%d for %s", rows, cols, shortID(id))
	default:
		m.status = "span refused"
	}
	return m
}

// blockAtCursor returns the block whose rectangle contains the cursor.
func (m editModel) blockAtCursor() (string, bool) {
	s := m.ed.Slide()
	for _, id := range s.BlockIDs() {
		if r, ok := s.Layout.RectOf(id); ok && r.Contains(m.curRow, m.curCol) {
			return id, true
		}
	}
	return "", false
}

// nextUnplacedBlock returns the first block without a position, so enter
// on an empty cell places pending content.
func (m editModel) nextUnplacedBlock() (string, bool) {
	s := m.ed.Slide()
	for _, id := range s.BlockIDs() {
		if _, placed := s.Layout.PositionOf(id); !placed {
			return id, true
		}
	}
	return "", false
}

func (m editModel) View() string {
	s := m.ed.Slide()
	chars := blockChars(s)
	held, dragging := m.ed.Dragging()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Edit " + displayTitle(s)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows move · enter pick/drop · w/t span · x unassign · u undo · s save · q quit"))
	b.WriteString("\n\n")

	for row := 0; row < s.Layout.Rows; row++ {
		b.WriteString("  ")
		for col := 0; col < s.Layout.Columns; col++ {
			cell := " · "
			style := editCellEmpty

			if id, ok := cellBlock(s, row, col); ok {
				cell = " " + chars[id] + " "
				style = editCellBlock
				if dragging && id == held {
					style = editCellHeld
				}
			}
			if row == m.curRow && col == m.curCol {
				style = editCellCursor
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if dragging {
		b.WriteString(editCellHeld.Render("holding "+shortID(held)) + "\n")
	}
	b.WriteString(editStatusStyle.Render(m.status))
	if m.dirty {
		b.WriteString(editStatusStyle.Render(" · unsaved"))
	}
	b.WriteString("\n")
	return b.String()
}

// cellBlock returns the block covering a cell, if any.
func cellBlock(s slide.Slide, row, col int) (string, bool) {
	for _, id := range s.BlockIDs() {
		if r, ok := s.Layout.RectOf(id); ok && r.Contains(row, col) {
			return id, true
		}
	}
	return "", false
}
