package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
)

// Canvas styles
var (
	canvasNodeStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	canvasSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	canvasDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const canvasMaxLabel = 16

// renderCanvas projects node positions onto a character grid of the given
// size. Labels are truncated and the node under the cursor is highlighted.
// Collapsed nodes draw with a + prefix as a hint that children are hidden.
func renderCanvas(nodes []*graph.Node, cursorID string, cols, rows int) string {
	if cols < 10 || rows < 3 || len(nodes) == 0 {
		return canvasDimStyle.Render("(canvas too small)")
	}

	min, max, ok := layout.Bounds(nodes)
	if !ok {
		return canvasDimStyle.Render("(no positions yet)")
	}

	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	// Grid of plain runes plus a parallel style map keyed by cell index.
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	selected := make(map[int]bool)

	for _, n := range nodes {
		x := int((n.Position.X - min.X) / spanX * float64(cols-1))
		y := int((n.Position.Y - min.Y) / spanY * float64(rows-1))

		label := n.DisplayLabel()
		if !n.Expanded {
			label = "+" + label
		}
		if len(label) > canvasMaxLabel {
			label = label[:canvasMaxLabel-1] + "…"
		}

		// Center the label on the projected point.
		start := x - len([]rune(label))/2
		if start < 0 {
			start = 0
		}
		for i, r := range []rune(label) {
			cx := start + i
			if cx >= cols {
				break
			}
			grid[y][cx] = r
			if n.ID == cursorID {
				selected[y*cols+cx] = true
			}
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		line := string(grid[y])
		if !rowSelected(selected, y, cols) {
			b.WriteString(canvasNodeStyle.Render(line))
			b.WriteString("\n")
			continue
		}
		// Split the row into styled runs so only the cursor node lights up.
		runes := []rune(line)
		run := strings.Builder{}
		runSel := selected[y*cols]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runSel {
				b.WriteString(canvasSelectedStyle.Render(run.String()))
			} else {
				b.WriteString(canvasNodeStyle.Render(run.String()))
			}
			run.Reset()
		}
		for x, r := range runes {
			sel := selected[y*cols+x]
			if sel != runSel {
				flush()
				runSel = sel
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func rowSelected(selected map[int]bool, row, cols int) bool {
	for x := 0; x < cols; x++ {
		if selected[row*cols+x] {
			return true
		}
	}
	return false
}
