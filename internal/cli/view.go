package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/layout"
	"github.com/matzehuels/ganttline/pkg/pipeline"
	"github.com/matzehuels/ganttline/pkg/render/term"
	"github.com/matzehuels/ganttline/pkg/scale"
	"github.com/matzehuels/ganttline/pkg/task"
)

var (
	viewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// viewChrome is the number of terminal lines around the chart body.
const viewChrome = 6

// viewCommand creates the interactive chart viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags chartFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "view [tasks]",
		Short: "Browse a task file as an interactive chart",
		Long: `Browse a task file as an interactive chart.

Keys:
  h / d / m   switch to the hour, day or month scale
  ← / →       shift the visible window
  ↑ / ↓       scroll through rows
  q           quit

With --watch the chart reloads whenever the task file is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			tasks, err := c.loadTasks(ctx, args[0], opts)
			if err != nil {
				return err
			}
			m, err := newViewModel(tasks, opts)
			if err != nil {
				return err
			}
			if watch {
				w, err := newFileWatcher(args[0])
				if err != nil {
					return err
				}
				defer w.Close()
				m.path, m.watcher = args[0], w
			}
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the task file changes")
	return cmd
}

// =============================================================================
// viewModel - Interactive chart viewer
// =============================================================================

// viewModel is the bubbletea model for the chart viewer.
type viewModel struct {
	tasks  []*task.Task
	opts   pipeline.Options
	view   scale.View
	ranges map[scale.Granularity]scale.Range // last window used per scale
	layout layout.Layout
	err    error

	firstRow int
	height   int

	// set with --watch
	path    string
	watcher *fileWatcher
}

// fileChangedMsg reports that the watched task file was saved.
type fileChangedMsg struct{}

func waitForChange(w *fileWatcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// newViewModel composes the initial layout.
func newViewModel(tasks []*task.Task, opts pipeline.Options) (viewModel, error) {
	v, err := opts.View()
	if err != nil {
		return viewModel{}, err
	}
	m := viewModel{
		tasks: tasks,
		opts:  opts,
		view:  v,
		ranges: map[scale.Granularity]scale.Range{
			scale.Hour:  scale.DefaultHourRange,
			scale.Month: scale.DefaultMonthRange,
		},
		height: 15,
	}
	m.ranges[v.Granularity] = v.Range
	m.relayout()
	return m, m.err
}

// relayout recomposes the chart for the current view.
func (m *viewModel) relayout() {
	opts := m.opts
	opts.Scale = m.view.Granularity.String()
	opts.Range = m.view.Range
	m.layout, m.err = pipeline.Compose(m.tasks, opts)
	m.clampScroll()
}

func (m *viewModel) clampScroll() {
	m.firstRow = max(0, min(m.firstRow, m.layout.TotalRows-m.height))
}

// setScale switches granularity, restoring the last window used for it.
func (m *viewModel) setScale(g scale.Granularity) {
	if g == m.view.Granularity {
		return
	}
	m.ranges[m.view.Granularity] = m.view.Range
	m.view = scale.NewView(g, m.ranges[g])
	m.relayout()
}

// shift moves the window n units along the time axis.
func (m *viewModel) shift(n int) {
	next := m.view.Shift(n)
	if next == m.view {
		return
	}
	m.view = next
	m.relayout()
}

// reload rereads the task file, keeping the last good tasks on error.
func (m *viewModel) reload() {
	tasks, err := pipeline.LoadFile(m.path, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.tasks = tasks
	m.relayout()
}

func (m viewModel) Init() tea.Cmd {
	if m.watcher != nil {
		return waitForChange(m.watcher)
	}
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "h":
			m.setScale(scale.Hour)
		case "d":
			m.setScale(scale.Day)
		case "m":
			m.setScale(scale.Month)
		case "left":
			m.shift(-1)
		case "right":
			m.shift(1)
		case "up", "k":
			m.firstRow--
			m.clampScroll()
		case "down", "j":
			m.firstRow++
			m.clampScroll()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-viewChrome, 3)
		m.clampScroll()
	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.watcher)
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render(m.view.String()))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("h/d/m scale  ←/→ shift  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(viewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(term.Render(m.layout, term.Options{FirstRow: m.firstRow, MaxRows: m.height}))
	b.WriteString("\n\n")

	last := min(m.firstRow+m.height, m.layout.TotalRows)
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  rows %d-%d of %d · %d tasks",
		min(m.firstRow+1, last), last, m.layout.TotalRows, len(m.layout.Records))))

	return b.String()
}
