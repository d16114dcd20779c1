package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// SDFVersion is the version attribute emitted on the nesting format's
// document envelope.
const SDFVersion = "1.9"

// Document format names accepted by [Model.ToDocument].
const (
	FormatSDF  = "sdf"
	FormatURDF = "urdf"
)

// xmlDeclaration opens both document envelopes.
const xmlDeclaration = `<?xml version="1.0"?>`

// Model is a named group of links and joints. Models nest: a model may own
// sub-models directly or reference external ones through includes. Origin
// places the whole model in its parent's frame; Parent is a plain name
// reference.
type Model struct {
	Name   string
	Origin *pose.Pose
	Parent string
	Static bool

	Links    []*Link
	Joints   []*Joint
	Models   []*Model
	Includes []*Include
}

// children renders the owned child lists in stored order for the nesting
// format.
func (m *Model) sdfChildren(ctx *render.Context) ([]string, error) {
	links, err := sdfAll(ctx, m.Links)
	if err != nil {
		return nil, err
	}
	joints, err := sdfAll(ctx, m.Joints)
	if err != nil {
		return nil, err
	}
	models, err := sdfAll(ctx, m.Models)
	if err != nil {
		return nil, err
	}
	includes, err := sdfAll(ctx, m.Includes)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(links)+len(joints)+len(models)+len(includes))
	out = append(out, links...)
	out = append(out, joints...)
	out = append(out, models...)
	out = append(out, includes...)
	return out, nil
}

func (m *Model) ToSDF(ctx *render.Context) (string, error) {
	children, err := m.sdfChildren(ctx)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, 3+len(children))
	parts = append(parts, fmt.Sprintf("<static>%s</static>", boolStr(m.Static)))
	if m.Origin != nil {
		parts = append(parts, m.Origin.SDF())
	}
	if m.Parent != "" {
		parts = append(parts, fmt.Sprintf("<parent>%s</parent>", m.Parent))
	}
	parts = append(parts, children...)
	return element(fmt.Sprintf(`<model name="%s">`, m.Name), "</model>", parts...), nil
}

// ToURDF renders the model as a scope push: the flattening format has no
// model element, so the model contributes only its name prefix and its pose
// (folded into every descendant's own pose) and the concatenated fragments
// of its children. The document root element is emitted by ToURDFDocument.
func (m *Model) ToURDF(ctx *render.Context) (string, error) {
	if m.Parent != "" {
		ctx.Warnf(m, "model parent is ignored in URDF")
	}
	if m.Static {
		ctx.Warnf(m, "model static flag is ignored in URDF")
	}
	if m.Origin != nil {
		ctx.Warnf(m, "model pose is folded into descendant poses in URDF")
		ctx.PushPose(*m.Origin)
		defer ctx.PopPose()
	}

	ctx.PushScope(m.Name)
	defer ctx.PopScope()

	links, err := urdfAll(ctx, m.Links)
	if err != nil {
		return "", err
	}
	joints, err := urdfAll(ctx, m.Joints)
	if err != nil {
		return "", err
	}
	models, err := urdfAll(ctx, m.Models)
	if err != nil {
		return "", err
	}
	// Includes have no URDF form; rendering any is a hard failure that
	// unwinds through the deferred pops above.
	if _, err := urdfAll(ctx, m.Includes); err != nil {
		return "", err
	}

	out := make([]string, 0, len(links)+len(joints)+len(models))
	out = append(out, links...)
	out = append(out, joints...)
	out = append(out, models...)
	return joinLines(out), nil
}

// joinLines joins fragments with newlines, skipping empties.
func joinLines(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p
	}
	return out
}

// ToSDFDocument renders the model as a complete nesting-format document and
// returns the text plus all diagnostics recorded during the traversal.
func (m *Model) ToSDFDocument(opts ...render.Option) (string, []render.Diagnostic, error) {
	ctx := render.NewContext(opts...)
	body, err := m.ToSDF(ctx)
	if err != nil {
		return "", ctx.Diagnostics(), err
	}
	doc := fmt.Sprintf("%s\n<sdf version=\"%s\">\n%s\n</sdf>\n", xmlDeclaration, SDFVersion, indent(body, 1))
	return doc, ctx.Diagnostics(), nil
}

// ToURDFDocument renders the model as a complete flattening-format document.
// The root element carries the model's own name; every descendant name is
// flattened with the context separator. The error is non-nil only for
// constructs the format genuinely cannot express, in which case no partial
// output is returned.
func (m *Model) ToURDFDocument(opts ...render.Option) (string, []render.Diagnostic, error) {
	ctx := render.NewContext(opts...)
	body, err := m.ToURDF(ctx)
	if err != nil {
		return "", ctx.Diagnostics(), err
	}
	doc := fmt.Sprintf("%s\n%s\n", xmlDeclaration, element(fmt.Sprintf(`<robot name="%s">`, m.Name), "</robot>", body))
	return doc, ctx.Diagnostics(), nil
}

// ToDocument renders the model to the named format. It is the single entry
// point for callers that take the format as user input.
func (m *Model) ToDocument(format string, opts ...render.Option) (string, []render.Diagnostic, error) {
	switch format {
	case FormatSDF:
		return m.ToSDFDocument(opts...)
	case FormatURDF:
		return m.ToURDFDocument(opts...)
	default:
		return "", nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s or %s)", format, FormatSDF, FormatURDF)
	}
}
