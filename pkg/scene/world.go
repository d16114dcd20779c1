package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// GUICamera is the viewer camera placement inside a world's GUI block.
type GUICamera struct {
	Name   string
	Origin *pose.Pose
}

func (c *GUICamera) ToSDF(ctx *render.Context) (string, error) {
	poseFrag := ""
	if c.Origin != nil {
		poseFrag = c.Origin.SDF()
	}
	return element(fmt.Sprintf(`<camera name="%s">`, c.Name), "</camera>", poseFrag), nil
}

func (c *GUICamera) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(c, "gui camera is not supported in URDF")
	return "", nil
}

// GUI holds viewer configuration for a world.
type GUI struct {
	Camera *GUICamera
}

func (g *GUI) ToSDF(ctx *render.Context) (string, error) {
	camera := ""
	if g.Camera != nil {
		frag, err := g.Camera.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		camera = frag
	}
	return element("<gui>", "</gui>", camera), nil
}

func (g *GUI) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(g, "gui configuration is not supported in URDF")
	return "", nil
}

// World is a top-level scene: models, external includes, recorded states,
// and viewer configuration. Worlds exist only in the nesting format; a
// multi-model world has no flattening-format equivalent.
type World struct {
	Name     string
	Models   []*Model
	Includes []*Include
	States   []*WorldState
	GUI      *GUI
}

func (w *World) ToSDF(ctx *render.Context) (string, error) {
	parts := make([]string, 0, 1+len(w.Models)+len(w.Includes)+len(w.States))
	if w.GUI != nil {
		frag, err := w.GUI.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	models, err := sdfAll(ctx, w.Models)
	if err != nil {
		return "", err
	}
	includes, err := sdfAll(ctx, w.Includes)
	if err != nil {
		return "", err
	}
	states, err := sdfAll(ctx, w.States)
	if err != nil {
		return "", err
	}
	parts = append(parts, models...)
	parts = append(parts, includes...)
	parts = append(parts, states...)
	return element(fmt.Sprintf(`<world name="%s">`, w.Name), "</world>", parts...), nil
}

func (w *World) ToURDF(ctx *render.Context) (string, error) {
	return "", errors.New(errors.ErrCodeUnsupported,
		"world %q cannot be rendered to URDF: the format has a single flat model space", w.Name)
}

// ToSDFDocument renders the world as a complete nesting-format document.
func (w *World) ToSDFDocument(opts ...render.Option) (string, []render.Diagnostic, error) {
	ctx := render.NewContext(opts...)
	body, err := w.ToSDF(ctx)
	if err != nil {
		return "", ctx.Diagnostics(), err
	}
	doc := fmt.Sprintf("%s\n<sdf version=\"%s\">\n%s\n</sdf>\n", xmlDeclaration, SDFVersion, indent(body, 1))
	return doc, ctx.Diagnostics(), nil
}
