package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canopy/pkg/config"
	"github.com/matzehuels/canopy/pkg/graph"
	"github.com/matzehuels/canopy/pkg/layout"
	"github.com/matzehuels/canopy/pkg/measure"
	"github.com/matzehuels/canopy/pkg/pipeline"
)

// viewCommand creates the view command for the interactive viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		algorithm string
		width     float64
		height    float64
		seed      uint64
		noWatch   bool
	)

	cmd := &cobra.Command{
		Use:   "view <graph.json>",
		Short: "Explore a graph interactively in the terminal",
		Long: `Explore a graph interactively in the terminal.

Keys:

  up/k down/j   move cursor over visible nodes
  enter/space   expand or collapse the node under the cursor
  t / b / f     switch to tree, bidirectional, or force layout
  o             toggle the overlap pass
  r             reload the input file
  q             quit

The force layout animates continuously. Unless --no-watch is given the input
file is watched and the viewer reloads it on change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(args[0], algorithm, width, height, seed, noWatch)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "initial layout algorithm")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "force layout seed")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable file watching")
	return cmd
}

func (c *CLI) runView(path, algorithm string, width, height float64, seed uint64, noWatch bool) error {
	doc, err := graph.ReadDocumentFile(path)
	if err != nil {
		printError("%v", err)
		return err
	}

	if algorithm == "" {
		algorithm = c.Config.Viewer.Algorithm
	}
	if _, ok := layout.ValidAlgorithms[algorithm]; !ok {
		printError("Unknown algorithm %q", algorithm)
		return fmt.Errorf("unknown algorithm %q", algorithm)
	}

	var watcher *fsnotify.Watcher
	if !noWatch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			c.Logger.Warn("file watching unavailable", "error", err)
		} else {
			// Watch the directory; editors often replace files by rename.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				c.Logger.Warn("file watching unavailable", "error", err)
				_ = watcher.Close()
				watcher = nil
			}
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	m := newViewerModel(doc, path, algorithm, c.Config.Viewer, c.Config.Layout, graph.Size{Width: width, Height: height}, seed, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// ViewerModel - Interactive graph exploration
// =============================================================================

type viewTickMsg time.Time

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

// viewerModel is the bubbletea model for the interactive viewer.
type viewerModel struct {
	doc      *graph.Document
	path     string
	measurer *measure.Memoized

	algorithm string
	params    layout.Params
	canvas    graph.Size
	seed      uint64
	overlap   bool
	tick      time.Duration

	engine       layout.Engine
	visible      []*graph.Node
	visibleEdges []graph.Edge
	cursor       int

	watcher *fsnotify.Watcher
	status  string
	termW   int
	termH   int
}

func newViewerModel(doc *graph.Document, path, algorithm string, vc config.ViewerConfig, params layout.Params, canvas graph.Size, seed uint64, watcher *fsnotify.Watcher) viewerModel {
	if params == (layout.Params{}) {
		params = layout.DefaultParams()
	}
	tick := time.Duration(vc.TickIntervalMS) * time.Millisecond
	if tick <= 0 {
		tick = 50 * time.Millisecond
	}

	m := viewerModel{
		doc:       doc,
		path:      path,
		measurer:  measure.NewMemoized(nil),
		algorithm: algorithm,
		params:    params,
		canvas:    canvas,
		seed:      seed,
		overlap:   vc.ResolveOverlap,
		tick:      tick,
		watcher:   watcher,
		termW:     80,
		termH:     24,
	}
	m.rebuildEngine()
	m.relayout()
	return m
}

func (m *viewerModel) rebuildEngine() {
	engine, err := layout.New(m.algorithm, m.params, m.seed)
	if err != nil {
		// Algorithm names are validated before the model is built.
		engine, _ = layout.New(layout.AlgorithmTree, m.params, m.seed)
		m.algorithm = layout.AlgorithmTree
	}
	m.engine = engine
}

// relayout re-resolves visibility and runs the active layout over the
// visible subgraph. Positions of nodes that stay visible carry over, so
// expanding under the force layout only randomizes the newcomers.
func (m *viewerModel) relayout() {
	measure.Apply(m.measurer, m.doc)
	idx := graph.BuildIndex(m.doc.Nodes, m.doc.Edges)
	m.visible, m.visibleEdges = graph.Visible(idx, m.doc.Edges)

	m.engine.Layout(m.visible, m.visibleEdges, m.canvas)
	if m.overlap && m.algorithm != layout.AlgorithmForce {
		layout.ResolveOverlaps(m.visible, m.params)
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m viewerModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, watchForChanges(m.watcher, m.path))
	}
	if m.algorithm == layout.AlgorithmForce {
		cmds = append(cmds, tickCmd(m.tick))
	}
	return tea.Batch(cmds...)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return viewTickMsg(t)
	})
}

func watchForChanges(w *fsnotify.Watcher, path string) tea.Cmd {
	base := filepath.Base(path)
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return fileChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height
		return m, nil

	case viewTickMsg:
		if m.algorithm != layout.AlgorithmForce {
			return m, nil
		}
		// One simulation step per frame; the overlap pass would fight the
		// springs, so it only runs on deterministic layouts.
		m.engine.Layout(m.visible, m.visibleEdges, m.canvas)
		return m, tickCmd(m.tick)

	case fileChangedMsg:
		m.reload()
		cmds := []tea.Cmd{watchForChanges(m.watcher, m.path)}
		if m.algorithm == layout.AlgorithmForce {
			cmds = append(cmds, tickCmd(m.tick))
		}
		return m, tea.Batch(cmds...)

	case watchErrMsg:
		m.status = fmt.Sprintf("watch error: %v", msg.err)
		return m, watchForChanges(m.watcher, m.path)
	}
	return m, nil
}

func (m *viewerModel) reload() {
	doc, err := graph.ReadDocumentFile(m.path)
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return
	}
	m.doc = doc
	m.measurer.Reset()
	m.relayout()
	m.status = "reloaded " + filepath.Base(m.path)
}

func (m viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "enter", " ":
		if m.cursor < len(m.visible) {
			n := m.visible[m.cursor]
			v := !n.Expanded
			n.Expanded = v
			n.ExpandedOverride = &v
			m.relayout()
		}

	case "t":
		return m.switchAlgorithm(layout.AlgorithmTree)
	case "b":
		return m.switchAlgorithm(layout.AlgorithmBidirectional)
	case "f":
		return m.switchAlgorithm(layout.AlgorithmForce)

	case "o":
		m.overlap = !m.overlap
		m.relayout()

	case "r":
		m.reload()
	}
	return m, nil
}

func (m viewerModel) switchAlgorithm(algorithm string) (tea.Model, tea.Cmd) {
	if m.algorithm == algorithm {
		return m, nil
	}
	m.algorithm = algorithm
	m.rebuildEngine()
	m.doc.ResetPlacement()
	m.relayout()
	m.status = algorithm + " layout"
	if algorithm == layout.AlgorithmForce {
		return m, tickCmd(m.tick)
	}
	return m, nil
}

func (m viewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("canopy"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("↑/↓ move  ⏎ toggle  t/b/f layout  o overlap  r reload  q quit"))
	b.WriteString("\n\n")

	rows := m.termH - 6
	if rows < 3 {
		rows = 3
	}
	var cursorID string
	if m.cursor < len(m.visible) {
		cursorID = m.visible[m.cursor].ID
	}
	b.WriteString(renderCanvas(m.visible, cursorID, m.termW, rows))

	b.WriteString("\n")
	overlapState := "off"
	if m.overlap {
		overlapState = "on"
	}
	footer := fmt.Sprintf("%s  nodes %d  overlap %s", m.algorithm, len(m.visible), overlapState)
	if cursorID != "" {
		footer += "  " + StyleHighlight.Render(cursorID)
	}
	if m.status != "" {
		footer += "  " + StyleDim.Render(m.status)
	}
	b.WriteString(StyleDim.Render("  ") + footer)

	return b.String()
}
