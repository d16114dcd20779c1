package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// originOr returns *p, or the identity pose when p is nil. An absent pose
// always means "at the parent frame's origin".
func originOr(p *pose.Pose) pose.Pose {
	if p == nil {
		return pose.Identity()
	}
	return *p
}

// Collision is a named collision geometry owned by a Link.
type Collision struct {
	Name    string
	Origin  *pose.Pose
	Shape   Shape
	Surface *SurfaceInfo
}

func (c *Collision) ToSDF(ctx *render.Context) (string, error) {
	shape, err := c.Shape.ToSDF(ctx)
	if err != nil {
		return "", err
	}
	parts := []string{"", element("<geometry>", "</geometry>", shape)}
	if c.Origin != nil {
		parts[0] = c.Origin.SDF()
	}
	if c.Surface != nil {
		surface, err := c.Surface.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, surface)
	}
	return element(fmt.Sprintf(`<collision name="%s">`, c.Name), "</collision>", parts...), nil
}

func (c *Collision) ToURDF(ctx *render.Context) (string, error) {
	shape, err := c.Shape.ToURDF(ctx)
	if err != nil {
		return "", err
	}
	name := ctx.ScopedName(c.Name)
	if c.Surface != nil {
		ctx.Warnf(c, "surface properties on collision %q are not supported in URDF", name)
	}
	origin := pose.Compose(ctx.CurrentPose(), originOr(c.Origin))
	return element(fmt.Sprintf(`<collision name="%s">`, name), "</collision>",
		origin.URDF(),
		element("<geometry>", "</geometry>", shape),
	), nil
}

// Visual is a named visual geometry owned by a Link, with an optional
// material.
type Visual struct {
	Name     string
	Origin   *pose.Pose
	Shape    Shape
	Material Material
}

func (v *Visual) ToSDF(ctx *render.Context) (string, error) {
	shape, err := v.Shape.ToSDF(ctx)
	if err != nil {
		return "", err
	}
	parts := []string{"", element("<geometry>", "</geometry>", shape)}
	if v.Origin != nil {
		parts[0] = v.Origin.SDF()
	}
	if v.Material != nil {
		material, err := v.Material.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, material)
	}
	return element(fmt.Sprintf(`<visual name="%s">`, v.Name), "</visual>", parts...), nil
}

func (v *Visual) ToURDF(ctx *render.Context) (string, error) {
	shape, err := v.Shape.ToURDF(ctx)
	if err != nil {
		return "", err
	}
	name := ctx.ScopedName(v.Name)
	origin := pose.Compose(ctx.CurrentPose(), originOr(v.Origin))
	parts := []string{origin.URDF(), element("<geometry>", "</geometry>", shape)}
	if v.Material != nil {
		inner, err := v.Material.ToURDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, element(fmt.Sprintf(`<material name="%s_material">`, name), "</material>", inner))
	}
	return element(fmt.Sprintf(`<visual name="%s">`, name), "</visual>", parts...), nil
}
