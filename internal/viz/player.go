package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/floeze/naviz/internal/animator"
	"github.com/floeze/naviz/internal/state"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	frameRate       = 30
)

// playerStyles holds theme-derived lipgloss styles for one render.
type playerStyles struct {
	canvas  lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	shuttle lipgloss.Style
}

func themedStyles(t Theme) playerStyles {
	return playerStyles{
		canvas:  lipgloss.NewStyle().Padding(1, 2),
		stats:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(45),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(2),
		shuttle: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

type TickMsg time.Time

// ReloadMsg replaces the animation, keeping the playback position.
type ReloadMsg struct {
	Animator *animator.Animator
	Err      error
}

// Model plays an animation on a braille canvas with a stats sidebar.
type Model struct {
	anim    *animator.Animator
	name    string
	t       float64
	speed   float64
	running bool
	looping bool
	zen     bool
	canvas  *Canvas

	shuttleHistory []float64
	lastErr        error
	showHelp       bool
}

// NewModel prepares a player for an animation.
func NewModel(anim *animator.Animator, name string) Model {
	return Model{
		anim:           anim,
		name:           name,
		speed:          1,
		running:        true,
		looping:        true,
		canvas:         NewCanvas(width, height),
		shuttleHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = 0
			m.shuttleHistory = m.shuttleHistory[:0]
		case "l":
			m.looping = !m.looping
		case "z":
			m.zen = !m.zen
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "left", "h":
			m.seek(-m.anim.Duration() / 50)
		case "right":
			m.seek(m.anim.Duration() / 50)
		case "up", "k":
			m.speed *= 1.25
		case "down", "j":
			m.speed /= 1.25
		case "?":
			m.showHelp = !m.showHelp
		}
	case ReloadMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.anim = msg.Animator
		m.lastErr = nil
		if m.t > m.anim.Duration() {
			m.t = 0
		}
	case TickMsg:
		if m.running {
			m.t += m.speed * m.anim.Duration() / (10 * frameRate)
			if m.t > m.anim.Duration() {
				if m.looping {
					m.t = 0
				} else {
					m.t = m.anim.Duration()
					m.running = false
				}
			}
		}
		m.recordShuttling()
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) seek(dt float64) {
	m.t += dt
	if m.t < 0 {
		m.t = 0
	}
	if max := m.anim.Duration(); m.t > max {
		m.t = max
	}
}

// recordShuttling samples the shuttling atom count for the sidebar chart.
func (m *Model) recordShuttling() {
	s := m.anim.State(m.t)
	shuttling := 0
	for _, a := range s.Atoms {
		if a.Shuttle {
			shuttling++
		}
	}
	m.shuttleHistory = append(m.shuttleHistory, float64(shuttling))
	if len(m.shuttleHistory) > historyCapacity {
		m.shuttleHistory = m.shuttleHistory[1:]
	}
}

// View renders the canvas and the sidebar.
func (m Model) View() string {
	s := m.anim.State(m.t)
	m.draw(s)

	shuttling := 0
	for _, a := range s.Atoms {
		if a.Shuttle {
			shuttling++
		}
	}

	styles := themedStyles(CurrentTheme)
	canvasView := styles.canvas.Render(m.canvas.String())
	if m.zen {
		return canvasView
	}

	var b strings.Builder
	b.WriteString(styles.header.Render(strings.ToUpper(m.name)) + "\n")
	status := "PLAYING"
	if !m.running {
		status = "PAUSED"
	}
	b.WriteString(status + "\n\n")

	if len(m.shuttleHistory) > 1 {
		chart := asciigraph.Plot(m.shuttleHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Shuttling atoms"))
		b.WriteString(styles.graph.Render(chart) + "\n\n")
	}

	b.WriteString(styles.label.Render("Time") + styles.value.Render(s.Time) + "\n")
	b.WriteString(styles.label.Render("Progress") + styles.value.Render(progressBar(m.t, m.anim.Duration())) + "\n")
	b.WriteString(styles.label.Render("Speed") + styles.value.Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")
	b.WriteString(styles.label.Render("Atoms") + styles.value.Render(fmt.Sprintf("%d", m.anim.AtomCount())) + "\n")
	b.WriteString(styles.label.Render("Shuttling") + styles.shuttle.Render(fmt.Sprintf("%d", shuttling)) + "\n")
	if m.lastErr != nil {
		b.WriteString("\n" + styles.shuttle.Render("reload failed: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString(styles.help.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme Z:Zen L:Loop ←→:Seek ↑↓:Speed"))

	statsView := styles.stats.Render(b.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from the start   ║
║  Q        - Quit                     ║
║  Left/H   - Seek backwards           ║
║  Right    - Seek forwards            ║
║  Up/K     - Speed up (+25%)          ║
║  Down/J   - Slow down (-25%)         ║
║  L        - Toggle looping           ║
║  T        - Cycle color themes       ║
║  Z        - Toggle zen mode          ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// project maps content coordinates to canvas sub-pixels, preserving aspect.
func (m *Model) project() (scale, offX, offY float64) {
	cfg := m.anim.Config()
	min, max := cfg.ContentExtent[0], cfg.ContentExtent[1]
	w := max.X - min.X
	h := max.Y - min.Y
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	cw, ch := float64(width*2-4), float64(height*4-4)
	scale = cw / w
	if s := ch / h; s < scale {
		scale = s
	}
	offX = 2 + (cw-w*scale)/2 - min.X*scale
	offY = 2 + (ch-h*scale)/2 - min.Y*scale
	return scale, offX, offY
}

// draw renders zones, traps and atoms for one frame.
func (m *Model) draw(s *state.State) {
	m.canvas.Clear()
	scale, offX, offY := m.project()
	px := func(v float64) int { return int(v*scale + offX) }
	py := func(v float64) int { return int(v*scale + offY) }

	cfg := m.anim.Config()
	for _, zone := range cfg.Machine.Zones {
		m.canvas.DrawRect(px(zone.Start.X), py(zone.Start.Y),
			px(zone.Start.X+zone.Size.X), py(zone.Start.Y+zone.Size.Y))
	}
	for _, trap := range cfg.Machine.Traps.Positions {
		m.canvas.DrawCircle(px(trap.X), py(trap.Y), int(cfg.Machine.Traps.Radius*scale))
	}

	for _, a := range s.Atoms {
		x, y := px(a.Position.X), py(a.Position.Y)
		if a.Shuttle {
			m.canvas.DrawDashedLine(x, 0, x, height*4, 2)
			m.canvas.DrawDashedLine(0, y, width*2, y, 2)
		}
		m.canvas.FillCircle(x, y, int(a.Size*scale))
	}
}

func progressBar(t, total float64) string {
	barWidth := 20
	ratio := 0.0
	if total > 0 {
		ratio = t / total
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(barWidth))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
}
