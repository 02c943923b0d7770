package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoscope/internal/playback"
	"github.com/san-kum/algoscope/internal/render"
	"github.com/san-kum/algoscope/internal/trace"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type tickMsg time.Time

func tick(speed float64) tea.Cmd {
	interval := time.Duration(float64(time.Second) / speed)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel walks one trace. The tea loop owns the tick cadence; the
// controller owns the cursor and its clamps.
type playModel struct {
	name     string
	ctrl     *playback.Controller
	renderer *render.CanvasRenderer

	playing bool
	speed   float64

	width  int
	height int
}

func newPlayModel(name string, tr *trace.Trace, speed float64) playModel {
	if speed <= 0 {
		speed = 2.0
	}
	ctrl := playback.New(tr)
	ctrl.Seek(0)
	return playModel{
		name:     name,
		ctrl:     ctrl,
		renderer: render.NewCanvasRenderer(60, 16),
		speed:    speed,
		width:    80,
		height:   24,
	}
}

func (m playModel) Init() tea.Cmd { return nil }

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.ctrl.StepForward()
		if m.ctrl.Status() == playback.Finished {
			m.playing = false
			return m, nil
		}
		return m, tick(m.speed)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (playModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case " ", "p":
		if m.playing {
			m.playing = false
			return m, nil
		}
		if m.ctrl.Status() == playback.Finished {
			m.ctrl.Seek(0)
		}
		m.playing = true
		return m, tick(m.speed)
	case "right", "l", "s":
		m.playing = false
		m.ctrl.StepForward()
	case "left", "h":
		m.playing = false
		m.ctrl.StepBackward()
	case "g":
		m.ctrl.Seek(0)
	case "G":
		m.ctrl.Seek(m.ctrl.Trace().Len() - 1)
	case "r":
		m.playing = false
		m.ctrl.Seek(0)
	case "+", "=":
		m.speed = math.Min(m.speed*2, 64)
	case "-", "_":
		m.speed = math.Max(m.speed/2, 0.25)
	}
	return m, nil
}

func (m playModel) View() string {
	step, ok := m.ctrl.Current()
	if !ok {
		return "\n   " + dim.Render("empty trace") + "\n"
	}

	var b strings.Builder

	statusIcon := yellow.Render("○")
	statusText := yellow.Render("paused")
	if m.playing {
		statusIcon = green.Render("●")
		statusText = green.Render("playing")
	} else if m.ctrl.Status() == playback.Finished {
		statusIcon = cyan.Render("●")
		statusText = cyan.Render("finished")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.name), statusText,
		dim.Render(fmt.Sprintf("%.2gx", m.speed))))

	b.WriteString("   " + progressBar(m.ctrl.Cursor(), m.ctrl.Trace().Len(), 40) + "\n\n")

	frame, err := m.renderer.Frame(step)
	if err == nil {
		for _, row := range strings.Split(frame.String(), "\n") {
			b.WriteString("   " + white.Render(row) + "\n")
		}
	}

	b.WriteString("\n   " + dim.Render(step.Op.String()))
	if step.Annotation != "" {
		b.WriteString("  " + white.Render(step.Annotation))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s\n",
		dim.Render("cmp"), yellow.Render(fmt.Sprintf("%d", step.Counters.Comparisons)),
		dim.Render("swp"), magenta.Render(fmt.Sprintf("%d", step.Counters.Swaps)),
		dim.Render("tch"), dim.Render(fmt.Sprintf("%d", step.Counters.Touches))))

	if spark := comparisonSparkline(m.ctrl.Trace(), m.ctrl.Cursor(), 32); spark != "" {
		b.WriteString("   " + dim.Render("cmp") + " " + cyan.Render(spark) + "\n")
	}

	b.WriteString("\n" + dim.Render("   space play  ←→ step  g/G ends  ± speed  r rewind  q quit") + "\n")

	return b.String()
}

func progressBar(cursor, length, width int) string {
	if length <= 0 {
		return dimmer.Render(strings.Repeat("─", width))
	}
	filled := 0
	if length > 1 {
		filled = cursor * width / (length - 1)
	}
	filled = min(max(filled, 0), width)
	pos := dim.Render(fmt.Sprintf("%d/%d", cursor+1, length))
	return cyan.Render(strings.Repeat("━", filled)) +
		dimmer.Render(strings.Repeat("─", width-filled)) + "  " + pos
}

// comparisonSparkline condenses the comparison counter over the steps up
// to the cursor into one row of block glyphs.
func comparisonSparkline(tr *trace.Trace, cursor, width int) string {
	if cursor < 1 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	maxVal := 1
	for i := 0; i <= cursor; i++ {
		step, _ := tr.At(i)
		maxVal = max(maxVal, step.Counters.Comparisons)
	}
	n := min(cursor+1, width)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		step, _ := tr.At(i * cursor / max(n-1, 1))
		idx := step.Counters.Comparisons * 7 / maxVal
		sb.WriteRune(chars[min(max(idx, 0), 7)])
	}
	return sb.String()
}

// RunPlayback opens the interactive single-trace player.
func RunPlayback(name string, tr *trace.Trace, speed float64) error {
	p := tea.NewProgram(newPlayModel(name, tr, speed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
