package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scenesmith/scenesmith/pkg/scene"
)

// newInspectCmd creates the inspect command for summarizing a scene's model
// tree. The default output is a static summary; --interactive opens a
// navigable tree browser.
func newInspectCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarize a scene's model tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the model tree interactively")

	return cmd
}

func runInspect(ctx context.Context, input string, interactive bool) error {
	m, err := loadScene(input)
	if err != nil {
		return err
	}

	if interactive {
		p := tea.NewProgram(newTreeModel(m))
		_, err := p.Run()
		return err
	}

	links, joints, models, includes := countEntities(m)

	printNewline()
	printKeyValue("Scene", m.Name)
	printKeyValue("Static", fmt.Sprintf("%t", m.Static))
	printStats(links, joints, models, includes)
	printNewline()

	fmt.Println(StyleHighlight.Render(m.Name))
	printModelTree(m, "")

	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s convert %s", appName, input))
	return nil
}

// countEntities counts links, joints, sub-models, and includes across the
// whole tree, the root model included in none of the counts.
func countEntities(m *scene.Model) (links, joints, models, includes int) {
	links = len(m.Links)
	joints = len(m.Joints)
	includes = len(m.Includes)
	for _, sub := range m.Models {
		models++
		l, j, sm, inc := countEntities(sub)
		links += l
		joints += j
		models += sm
		includes += inc
	}
	return links, joints, models, includes
}

// printModelTree prints one model's children with box-drawing connectors,
// recursing into sub-models. The model's own name line is printed by the
// caller.
func printModelTree(m *scene.Model, indent string) {
	type row struct {
		text string
		sub  *scene.Model
	}
	var rows []row
	for _, l := range m.Links {
		rows = append(rows, row{text: StyleValue.Render(l.Name) + geometrySuffix(l)})
	}
	for _, j := range m.Joints {
		rows = append(rows, row{text: StyleValue.Render(j.Name) + StyleDim.Render(
			fmt.Sprintf(" %s %s %s %s", j.Parent, iconArrow, j.Child, "("+j.Type()+")"))})
	}
	for _, inc := range m.Includes {
		rows = append(rows, row{text: StyleValue.Render(inc.Name) + StyleDim.Render(" "+iconArrow+" "+inc.URI)})
	}
	for _, sub := range m.Models {
		rows = append(rows, row{sub: sub})
	}

	for i, r := range rows {
		connector, childIndent := "├─ ", indent+"│  "
		if i == len(rows)-1 {
			connector, childIndent = "└─ ", indent+"   "
		}
		if r.sub != nil {
			fmt.Println(indent + StyleDim.Render(connector) + StyleHighlight.Render(r.sub.Name))
			printModelTree(r.sub, childIndent)
			continue
		}
		fmt.Println(indent + StyleDim.Render(connector) + r.text)
	}
}

// geometrySuffix summarizes a link's geometry counts, empty for a bare link.
func geometrySuffix(l *scene.Link) string {
	var parts []string
	if n := len(l.Collisions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d collision(s)", n))
	}
	if n := len(l.Visuals); n > 0 {
		parts = append(parts, fmt.Sprintf("%d visual(s)", n))
	}
	if n := len(l.Sensors); n > 0 {
		parts = append(parts, fmt.Sprintf("%d sensor(s)", n))
	}
	if len(parts) == 0 {
		return ""
	}
	return StyleDim.Render(" · " + strings.Join(parts, ", "))
}
