// Package tui renders the starfield in a terminal with Bubble Tea.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/starfield"
)

const frameRate = 100 * time.Millisecond

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("189")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("103"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// cell is one canvas position; layer is -1 when empty.
type cell struct {
	glyph  rune
	layer  int
	bright bool
}

// Model is the Bubble Tea model for the terminal preview.
type Model struct {
	ctrl    *starfield.Controller
	kb      *starfield.Keyboard
	unmount func()

	layers []starfield.Layer
	width  int
	height int

	start   time.Time
	elapsed time.Duration
}

// New mounts ctrl on a fresh keyboard and draws the first background.
func New(ctrl *starfield.Controller) Model {
	kb := starfield.NewKeyboard()
	return Model{
		ctrl:    ctrl,
		kb:      kb,
		unmount: ctrl.Mount(kb),
		layers:  ctrl.Background(),
		start:   time.Now(),
	}
}

// SetSize updates the viewport size and redraws the stars for it.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.layers = m.ctrl.Background()
	return m
}

// Close detaches the keyboard handler.
func (m Model) Close() {
	if m.unmount != nil {
		m.unmount()
	}
}

// ShowStars reports whether the background is on.
func (m Model) ShowStars() bool { return m.ctrl.On() }

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tickMsg:
		m.elapsed = time.Time(msg).Sub(m.start)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "t":
			return m.toggle(), nil
		}
		was := m.ctrl.On()
		m.kb.Dispatch(keyEvent(msg))
		if m.ctrl.On() != was {
			m.layers = m.ctrl.Background()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y) {
			return m.toggle(), nil
		}
	}
	return m, nil
}

func (m Model) toggle() Model {
	m.ctrl.Toggle()
	m.layers = m.ctrl.Background()
	return m
}

// keyEvent translates a terminal key into a browser-style key event.
// Terminals cannot report the command key, so only Ctrl is ever set.
func keyEvent(msg tea.KeyMsg) *starfield.KeyEvent {
	s := msg.String()
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return &starfield.KeyEvent{Key: rest, Ctrl: true}
	}
	if msg.Type == tea.KeyRunes {
		return &starfield.KeyEvent{Key: string(msg.Runes)}
	}
	return &starfield.KeyEvent{Key: s}
}

func (m Model) button() string {
	return buttonStyle.Render(m.ctrl.Label())
}

func (m Model) onButton(x, y int) bool {
	return y == 0 && x >= 0 && x < lipgloss.Width(m.button())
}

// canvas places every star on a width x (height-1) grid.
func (m Model) canvas() [][]cell {
	rows := m.height - 1
	if rows <= 0 || m.width <= 0 {
		return nil
	}
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, m.width)
		for x := range grid[y] {
			grid[y][x] = cell{glyph: ' ', layer: -1}
		}
	}

	secs := m.elapsed.Seconds()
	for li, layer := range m.layers {
		for _, s := range layer.Stars {
			x := clamp(int(s.X/100*float64(m.width)), m.width)
			y := clamp(int(s.Y/100*float64(rows)), rows)
			bright := math.Mod(secs, s.Twinkle) < s.Twinkle/2
			grid[y][x] = cell{glyph: starGlyph(s.Size, bright), layer: li, bright: bright}
		}
	}
	return grid
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// starGlyph picks a glyph by rendered size; dim stars shrink to a dot.
func starGlyph(size float64, bright bool) rune {
	if !bright {
		return '·'
	}
	switch {
	case size >= 3.0:
		return '✦'
	case size >= 2.0:
		return '*'
	case size >= 1.2:
		return '+'
	default:
		return '·'
	}
}

// grayFor maps an opacity to the 24-step xterm grayscale ramp.
func grayFor(opacity float64, bright bool) lipgloss.Color {
	if !bright {
		opacity *= 0.35
	}
	return lipgloss.Color(fmt.Sprint(232 + int(math.Round(opacity*23))))
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.button())
	b.WriteString(hintStyle.Render(fmt.Sprintf("  %d stars · ctrl+s or t to toggle · q to quit", starfield.Total(m.layers))))

	styles := make(map[[2]int]lipgloss.Style)
	for _, row := range m.canvas() {
		b.WriteByte('\n')
		for _, c := range row {
			if c.layer < 0 {
				b.WriteRune(' ')
				continue
			}
			key := [2]int{c.layer, 0}
			if c.bright {
				key[1] = 1
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().Foreground(grayFor(m.layers[c.layer].Opacity, c.bright))
				styles[key] = st
			}
			b.WriteString(st.Render(string(c.glyph)))
		}
	}
	return b.String()
}
