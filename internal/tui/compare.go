package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/algoscope/internal/compare"
	"github.com/san-kum/algoscope/internal/playback"
	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

var paneBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("238")).
	Padding(0, 1)

// compareModel races several traces side by side under one clock.
type compareModel struct {
	session  *compare.Session
	renderer *render.CanvasRenderer

	playing bool
	speed   float64

	width  int
	height int
}

func newCompareModel(session *compare.Session, speed float64) compareModel {
	if speed <= 0 {
		speed = 2.0
	}
	session.Seek(0)
	return compareModel{
		session:  session,
		renderer: render.NewCanvasRenderer(32, 10),
		speed:    speed,
		width:    120,
		height:   32,
	}
}

func (m compareModel) Init() tea.Cmd { return nil }

func (m compareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.session.StepForward()
		if m.session.Finished() {
			m.playing = false
			return m, nil
		}
		return m, tick(m.speed)
	}
	return m, nil
}

func (m compareModel) handleKey(msg tea.KeyMsg) (compareModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case " ", "p":
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.session.Finished() {
			m.session.Seek(0)
		}
		m.playing = true
		return m, tick(m.speed)
	case "right", "l":
		m.playing = false
		m.session.StepForward()
	case "left", "h":
		m.playing = false
		m.session.StepBackward()
	case "g":
		m.session.Seek(0)
	case "G":
		m.session.Seek(m.session.MaxLen() - 1)
	case "r":
		m.playing = false
		m.session.Seek(0)
	case "+", "=":
		if m.speed < 64 {
			m.speed *= 2
		}
	case "-", "_":
		if m.speed > 0.25 {
			m.speed /= 2
		}
	}
	return m, nil
}

func (m compareModel) View() string {
	var b strings.Builder

	statusText := yellow.Render("paused")
	if m.playing {
		statusText = green.Render("playing")
	} else if m.session.Finished() {
		statusText = cyan.Render("finished")
	}
	b.WriteString(fmt.Sprintf("\n   %s  %s  %s\n",
		cyan.Render("compare"), statusText,
		dim.Render(fmt.Sprintf("step %d/%d  %.2gx",
			m.session.GlobalStep()+1, m.session.MaxLen(), m.speed))))
	b.WriteString("\n")

	panes := make([]string, 0, len(m.session.Tracks()))
	for _, t := range m.session.Tracks() {
		panes = append(panes, m.pane(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	b.WriteString("\n")

	if plot := m.counterPlot(); plot != "" {
		b.WriteString(plot + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play  ←→ step  g/G ends  ± speed  r rewind  q quit") + "\n")

	return b.String()
}

func (m compareModel) pane(t *compare.Track) string {
	var b strings.Builder

	name := cyan.Render(t.Name())
	if t.Status() == playback.Finished {
		name += " " + green.Render("✓")
	}
	b.WriteString(name + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("step %d/%d", t.Cursor()+1, t.Len())) + "\n")

	if step, ok := t.Controller().Current(); ok {
		if frame, err := m.renderer.Frame(step); err == nil {
			b.WriteString(white.Render(frame.String()) + "\n")
		}
	}

	c := t.Counters()
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n",
		dim.Render("cmp"), yellow.Render(fmt.Sprintf("%d", c.Comparisons)),
		dim.Render("swp"), magenta.Render(fmt.Sprintf("%d", c.Swaps))))

	return paneBorder.Render(b.String())
}

// counterPlot charts each track's comparison growth up to its cursor, so
// the relative cost of the racing algorithms is visible mid-run.
func (m compareModel) counterPlot() string {
	series := make([][]float64, 0, len(m.session.Tracks()))
	for _, t := range m.session.Tracks() {
		data := counterSeries(t.Trace(), t.Cursor())
		if len(data) > 1 {
			series = append(series, data)
		}
	}
	if len(series) == 0 {
		return ""
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Caption("comparisons"),
	)
	pad := "   "
	return pad + strings.ReplaceAll(dim.Render(graph), "\n", "\n"+pad)
}

func counterSeries(tr *trace.Trace, cursor int) []float64 {
	if cursor < 0 {
		return nil
	}
	data := make([]float64, 0, cursor+1)
	for i := 0; i <= cursor && i < tr.Len(); i++ {
		step, _ := tr.At(i)
		data = append(data, float64(step.Counters.Comparisons))
	}
	return data
}

// RunCompare opens the side-by-side session viewer.
func RunCompare(session *compare.Session, speed float64) error {
	p := tea.NewProgram(newCompareModel(session, speed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
