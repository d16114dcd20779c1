package scene

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Link is a rigid body owned by a Model. Its name must be unique within the
// owning model's flattened namespace; the nesting format additionally scopes
// names by model, so duplicate leaf names across sibling models are fine
// there. Parent is a plain name reference, never an ownership link.
type Link struct {
	Name       string
	Parent     string
	Origin     *pose.Pose
	Inertial   *Inertial
	Collisions []*Collision
	Visuals    []*Visual
	Sensors    []Sensor
}

// FromSimpleShape builds a single-geometry link: one collision and one
// visual sharing the given shape, the visual colored with color, and a
// massless inertial. The shape pose p applies to both geometries; the link
// itself sits at its parent frame's origin.
func FromSimpleShape(name string, p pose.Pose, shape Shape, color Color) *Link {
	return &Link{
		Name:     name,
		Inertial: ZeroInertial(),
		Collisions: []*Collision{
			{Name: name + "_collision", Origin: &p, Shape: shape},
		},
		Visuals: []*Visual{
			{Name: name + "_visual", Origin: &p, Shape: shape, Material: color},
		},
	}
}

func (l *Link) ToSDF(ctx *render.Context) (string, error) {
	parts := make([]string, 0, 3+len(l.Collisions)+len(l.Visuals)+len(l.Sensors))
	if l.Origin != nil {
		parts = append(parts, l.Origin.SDF())
	}
	if l.Inertial != nil {
		frag, err := l.Inertial.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	collisions, err := sdfAll(ctx, l.Collisions)
	if err != nil {
		return "", err
	}
	visuals, err := sdfAll(ctx, l.Visuals)
	if err != nil {
		return "", err
	}
	sensors, err := sdfAll(ctx, l.Sensors)
	if err != nil {
		return "", err
	}
	parts = append(parts, collisions...)
	parts = append(parts, visuals...)
	parts = append(parts, sensors...)
	return element(fmt.Sprintf(`<link name="%s">`, l.Name), "</link>", parts...), nil
}

func (l *Link) ToURDF(ctx *render.Context) (string, error) {
	// The flattening format has no link pose: the local pose is baked into
	// every owned geometry instead.
	if l.Origin != nil {
		ctx.PushPose(*l.Origin)
		defer ctx.PopPose()
	}

	name := ctx.ScopedName(l.Name)
	parts := make([]string, 0, 1+len(l.Collisions)+len(l.Visuals))
	if l.Inertial != nil {
		frag, err := l.Inertial.ToURDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	collisions, err := urdfAll(ctx, l.Collisions)
	if err != nil {
		return "", err
	}
	visuals, err := urdfAll(ctx, l.Visuals)
	if err != nil {
		return "", err
	}
	sensors, err := urdfAll(ctx, l.Sensors) // diagnostics only, no fragments
	if err != nil {
		return "", err
	}
	parts = append(parts, collisions...)
	parts = append(parts, visuals...)
	parts = append(parts, sensors...)
	return element(fmt.Sprintf(`<link name="%s">`, name), "</link>", parts...), nil
}
