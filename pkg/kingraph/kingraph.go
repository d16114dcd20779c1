package kingraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/scenesmith/scenesmith/pkg/render"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// Options configures kinematic diagram generation.
type Options struct {
	// Separator joins model prefixes into flattened node names. Empty means
	// the renderer's default.
	Separator string
	// Detailed includes joint types and geometry counts in labels.
	// When false, only names are shown.
	Detailed bool
}

// ToDOT converts a model tree to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG] or external Graphviz tools.
//
// Output is deterministic: nodes and edges follow the declaration order of
// the tree, so repeated calls on the same model produce identical bytes.
func ToDOT(m *scene.Model, opts Options) string {
	if opts.Separator == "" {
		opts.Separator = render.DefaultSeparator
	}

	var buf bytes.Buffer
	buf.WriteString("digraph kinematics {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeModel(&buf, m, "", 1, opts)

	buf.WriteString("}\n")
	return buf.String()
}

// writeModel emits one model's links, includes, and joints, then recurses
// into nested models as clusters. prefix is the flattened scope of the
// enclosing models, empty at the root.
func writeModel(buf *bytes.Buffer, m *scene.Model, prefix string, depth int, opts Options) {
	scoped := m.Name
	if prefix != "" {
		scoped = prefix + opts.Separator + m.Name
	}
	pad := strings.Repeat("  ", depth)

	for _, l := range m.Links {
		id := scoped + opts.Separator + l.Name
		fmt.Fprintf(buf, "%s%q [label=%q];\n", pad, id, linkLabel(l, opts.Detailed))
	}
	for _, inc := range m.Includes {
		id := scoped + opts.Separator + inc.Name
		fmt.Fprintf(buf, "%s%q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
			pad, id, inc.Name)
	}
	for _, j := range m.Joints {
		from := scoped + opts.Separator + j.Parent
		if j.Parent == "world" {
			from = "world"
		}
		to := scoped + opts.Separator + j.Child
		fmt.Fprintf(buf, "%s%q -> %q [label=%q];\n", pad, from, to, jointLabel(j, opts.Detailed))
	}

	for _, sub := range m.Models {
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%s%s%s\" {\n", pad, scoped, opts.Separator, sub.Name)
		fmt.Fprintf(buf, "%s  label=%q;\n", pad, sub.Name)
		fmt.Fprintf(buf, "%s  style=dashed;\n", pad)
		writeModel(buf, sub, scoped, depth+1, opts)
		fmt.Fprintf(buf, "%s}\n", pad)
	}
}

func linkLabel(l *scene.Link, detailed bool) string {
	if !detailed {
		return l.Name
	}
	return fmt.Sprintf("%s\ncollisions: %d\nvisuals: %d", l.Name, len(l.Collisions), len(l.Visuals))
}

func jointLabel(j *scene.Joint, detailed bool) string {
	if !detailed || j.Info == nil {
		return j.Name
	}
	return fmt.Sprintf("%s\n(%s)", j.Name, j.Info.Type())
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the diagram scales from
// origin, which keeps embedded previews stable across Graphviz versions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
