package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeModel - Interactive model tree browser
// =============================================================================

// treeRow is one visible line of the tree browser: an entity with its
// indentation depth and the detail lines shown when it is selected.
type treeRow struct {
	Depth   int
	Kind    string // "model", "link", "joint", "include"
	Label   string
	Details []string
}

// TreeModel is the bubbletea model for browsing a scene's entity tree.
type TreeModel struct {
	SceneName string
	Rows      []treeRow
	Cursor    int
	Height    int
	Offset    int
}

// newTreeModel flattens the model tree into browsable rows.
func newTreeModel(m *scene.Model) TreeModel {
	return TreeModel{
		SceneName: m.Name,
		Rows:      flattenModel(m, 0),
		Height:    15,
	}
}

// flattenModel emits one row per entity in declaration order, sub-models
// indented beneath their parent.
func flattenModel(m *scene.Model, depth int) []treeRow {
	details := []string{
		fmt.Sprintf("static: %t", m.Static),
		fmt.Sprintf("links: %d, joints: %d", len(m.Links), len(m.Joints)),
	}
	if m.Origin != nil {
		details = append(details, "pose: "+formatPose(*m.Origin))
	}
	if m.Parent != "" {
		details = append(details, "parent: "+m.Parent)
	}
	rows := []treeRow{{Depth: depth, Kind: "model", Label: m.Name, Details: details}}

	for _, l := range m.Links {
		d := []string{fmt.Sprintf("collisions: %d, visuals: %d, sensors: %d",
			len(l.Collisions), len(l.Visuals), len(l.Sensors))}
		if l.Origin != nil {
			d = append(d, "pose: "+formatPose(*l.Origin))
		}
		if l.Inertial != nil {
			d = append(d, fmt.Sprintf("mass: %s", pose.FormatFloat(l.Inertial.Mass)))
		}
		rows = append(rows, treeRow{Depth: depth + 1, Kind: "link", Label: l.Name, Details: d})
	}
	for _, j := range m.Joints {
		d := []string{
			fmt.Sprintf("type: %s", j.Type()),
			fmt.Sprintf("%s %s %s", j.Parent, iconArrow, j.Child),
		}
		rows = append(rows, treeRow{Depth: depth + 1, Kind: "joint", Label: j.Name, Details: d})
	}
	for _, inc := range m.Includes {
		d := []string{"uri: " + inc.URI, fmt.Sprintf("static: %t", inc.Static)}
		rows = append(rows, treeRow{Depth: depth + 1, Kind: "include", Label: inc.Name, Details: d})
	}
	for _, sub := range m.Models {
		rows = append(rows, flattenModel(sub, depth+1)...)
	}
	return rows
}

func formatPose(p pose.Pose) string {
	return fmt.Sprintf("%s %s %s / %s %s %s",
		pose.FormatFloat(p.Position.X()), pose.FormatFloat(p.Position.Y()), pose.FormatFloat(p.Position.Z()),
		pose.FormatFloat(p.RPY.X()), pose.FormatFloat(p.RPY.Y()), pose.FormatFloat(p.RPY.Z()))
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene: " + m.SceneName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + strings.Repeat("  ", r.Depth) +
			fmt.Sprintf("%-8s", r.Kind) + " " + r.Label

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if r.Kind == "include" {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	for _, d := range m.Rows[m.Cursor].Details {
		b.WriteString("  " + listDimStyle.Render(d))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
