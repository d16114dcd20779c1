package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/render"
)

// Material is a color/texture descriptor attached to a Visual. In the
// nesting format a material renders as a full <material> element; in the
// flattening format the owning Visual wraps the fragment in a named
// <material> element.
type Material interface {
	render.Entity
}

// Color is a flat RGBA material.
type Color struct {
	R, G, B, A float64
}

// rgba formats the four channels as space-separated literals.
func (c Color) rgba() string {
	return fmt.Sprintf("%s %s %s %s", f(c.R), f(c.G), f(c.B), f(c.A))
}

func (c Color) ToSDF(ctx *render.Context) (string, error) {
	return element("<material>", "</material>",
		fmt.Sprintf("<ambient>%s</ambient>", c.rgba()),
		fmt.Sprintf("<diffuse>%s</diffuse>", c.rgba()),
	), nil
}

func (c Color) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<color rgba="%s"/>`, c.rgba()), nil
}

// Texture references an external texture resource.
type Texture struct {
	URI string
}

func (t Texture) ToSDF(ctx *render.Context) (string, error) {
	return element("<material>", "</material>",
		element("<script>", "</script>", fmt.Sprintf("<uri>%s</uri>", t.URI)),
	), nil
}

func (t Texture) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<texture filename="%s"/>`, t.URI), nil
}

// Phong is a four-term Phong material. The flattening format can only carry
// a single color, so rendering there keeps the diffuse term and records a
// diagnostic for the dropped ones.
type Phong struct {
	Ambient  Color
	Diffuse  Color
	Specular Color
	Emissive Color
}

func (p Phong) ToSDF(ctx *render.Context) (string, error) {
	return element("<material>", "</material>",
		fmt.Sprintf("<ambient>%s</ambient>", p.Ambient.rgba()),
		fmt.Sprintf("<diffuse>%s</diffuse>", p.Diffuse.rgba()),
		fmt.Sprintf("<specular>%s</specular>", p.Specular.rgba()),
		fmt.Sprintf("<emissive>%s</emissive>", p.Emissive.rgba()),
	), nil
}

func (p Phong) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(p, "ambient/specular/emissive terms are not supported in URDF; keeping diffuse only")
	return p.Diffuse.ToURDF(ctx)
}
