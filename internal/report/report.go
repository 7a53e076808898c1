// Package report formats headless run results for the terminal.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
	"github.com/san-kum/glide/internal/trace"
)

var (
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

type Run struct {
	Name    string
	Params  kinematics.Params
	Loop    sim.Config
	Stats   sim.Stats
	Summary trace.Summary
	Metrics map[string]float64
	// Reason is empty when the run ended on its time budget.
	Reason string
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func vec(v [2]float64) string {
	return fmt.Sprintf("(%.2f, %.2f)", v[0], v[1])
}

// Render lays out a finished run as a bordered panel.
func Render(r Run) string {
	var b strings.Builder

	title := "glide run"
	if r.Name != "" {
		title += " · " + r.Name
	}
	b.WriteString(headerStyle.Render(title) + "\n")

	lines := []string{
		row("force", fmt.Sprintf("%g", r.Params.Force)),
		row("mass", fmt.Sprintf("%g", r.Params.Mass)),
		row("max speed", fmt.Sprintf("%g", r.Params.MaxSpeed)),
		row("dt", fmt.Sprintf("%g s", r.Loop.Dt)),
		"",
		row("steps", fmt.Sprintf("%d", r.Stats.Steps)),
		row("frames", fmt.Sprintf("%d", r.Stats.Frames)),
		row("max catch-up", fmt.Sprintf("%d", r.Stats.MaxCatchUp)),
		row("sim time", fmt.Sprintf("%.3f s", r.Summary.Elapsed)),
		"",
		row("distance", accentStyle.Render(fmt.Sprintf("%.1f px", r.Summary.Distance))),
		row("peak speed", accentStyle.Render(fmt.Sprintf("%.3f", r.Summary.PeakSpeed))),
		row("position", vec(r.Summary.Final.Position)),
		row("velocity", vec(r.Summary.Final.Velocity)),
		row("facing", r.Summary.Final.Facing.String()),
	}
	if len(r.Metrics) > 0 {
		names := make([]string, 0, len(r.Metrics))
		for name := range r.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		lines = append(lines, "")
		for _, name := range names {
			lines = append(lines, row(strings.ReplaceAll(name, "_", " "), fmt.Sprintf("%.4f", r.Metrics[name])))
		}
	}
	b.WriteString(strings.Join(lines, "\n"))

	if r.Reason != "" {
		b.WriteString("\n\n" + mutedStyle.Render("stopped: "+r.Reason))
	}

	return panelStyle.Render(b.String())
}

// Presets renders a name/params listing, one preset per line.
func Presets(names []string, params func(string) kinematics.Params) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("presets") + "\n")
	for _, name := range names {
		p := params(name)
		b.WriteString(accentStyle.Width(10).Render(name))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("force=%g mass=%g max_speed=%g", p.Force, p.Mass, p.MaxSpeed)))
		b.WriteString("\n")
	}
	return b.String()
}
