// Package player plays a caption set in the terminal against a wall clock.
package player

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/telop/internal/renderer"
	"github.com/ivlev/telop/internal/telop"
)

const (
	frameInterval = time.Second / 30
	seekStep      = 1.0
	barWidth      = 20
)

// Transport is a playback clock that can be controlled.
type Transport interface {
	telop.Clock
	Play()
	Pause()
	Running() bool
	Seek(t float64)
}

type tickMsg time.Time

type Model struct {
	Set       telop.Set
	EffectSec float64
	Easing    renderer.Easing
	Width     int

	clock Transport
	end   float64
	frame telop.Frame
}

func New(set telop.Set, effectSec float64, clock Transport) Model {
	return Model{
		Set:       set,
		EffectSec: effectSec,
		Easing:    renderer.Linear,
		Width:     60,
		clock:     clock,
		end:       set.End(),
		frame:     set.At(effectSec, clock.Now()),
	}
}

// Run plays the set until the user quits.
func Run(set telop.Set, effectSec float64, ease renderer.Easing) error {
	clock := telop.NewWallClock()
	m := New(set, effectSec, clock)
	m.Easing = ease
	clock.Play()

	_, err := tea.NewProgram(m).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.clock.Running() && m.clock.Now() >= m.end {
			m.clock.Pause()
			m.clock.Seek(m.end)
		}
		m.frame = m.Set.At(m.EffectSec, m.clock.Now())
		return m, tick()
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space", "p":
			if m.clock.Running() {
				m.clock.Pause()
			} else {
				if m.clock.Now() >= m.end {
					m.clock.Seek(0)
				}
				m.clock.Play()
			}
		case "left", "h":
			m.clock.Seek(m.clock.Now() - seekStep)
		case "right", "l":
			m.clock.Seek(m.clock.Now() + seekStep)
		case "home", "0":
			m.clock.Seek(0)
		}
		m.frame = m.Set.At(m.EffectSec, m.clock.Now())
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	state := "▶"
	if !m.clock.Running() {
		state = "❚❚"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %6.2fs / %.2fs", state, m.frame.Time, m.end)))
	b.WriteString("\n\n")

	caption := " "
	if m.frame.Active && m.frame.Text != "" {
		caption = m.frame.Text
	}
	opacity := renderer.Opacity(m.frame, m.Easing)
	b.WriteString(captionStyle(opacity).Width(m.Width).Render(caption))
	b.WriteString("\n\n")

	if m.frame.Active {
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("in  %s %.2f", bar(m.frame.In), m.frame.In)))
		b.WriteString("\n")
		b.WriteString(secondaryStyle.Render(fmt.Sprintf("out %s %.2f", bar(m.frame.Out), m.frame.Out)))
	} else {
		b.WriteString(secondaryStyle.Render("no telop"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("\n  space: play/pause • ←/→: seek • 0: restart • q: quit\n"))
	return b.String()
}

func bar(ratio float64) string {
	filled := int(telop.Remap(ratio, 0, barWidth) + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled) + "]"
}

// captionStyle fades the caption colour from near-black to white.
func captionStyle(opacity float64) lipgloss.Style {
	level := int(telop.Remap(opacity, 0x30, 0xff))
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", level, level, level))).
		Bold(true).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62"))
}

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).Background(lipgloss.Color("#1F2937")).Bold(true).Padding(0, 1)
	secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)
