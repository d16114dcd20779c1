package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Shape type names accepted by [ShapeFromType].
const (
	ShapeBox      = "box"
	ShapeSphere   = "sphere"
	ShapeCylinder = "cylinder"
	ShapeCapsule  = "capsule"
	ShapePlane    = "plane"
	ShapeMesh     = "mesh"
)

// Shape is a geometry descriptor carried by collisions and visuals. Shapes
// hold parameters only; geometry math is out of scope for this package.
type Shape interface {
	render.Entity
	Type() string
}

// ShapeFromType constructs a shape from its type name and dimension list.
// Expected dimensions per type:
//
//	box:      x, y, z
//	sphere:   radius
//	cylinder: radius, length
//	capsule:  radius, length
//	plane:    nx, ny, nz, width, height
//
// Mesh shapes carry a resource URI and must be constructed directly.
func ShapeFromType(typ string, dims ...float64) (Shape, error) {
	switch typ {
	case ShapeBox:
		if len(dims) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "box needs 3 dimensions, got %d", len(dims))
		}
		return Box{Size: mgl64.Vec3{dims[0], dims[1], dims[2]}}, nil
	case ShapeSphere:
		if len(dims) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "sphere needs 1 dimension, got %d", len(dims))
		}
		return Sphere{Radius: dims[0]}, nil
	case ShapeCylinder:
		if len(dims) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "cylinder needs 2 dimensions, got %d", len(dims))
		}
		return Cylinder{Radius: dims[0], Length: dims[1]}, nil
	case ShapeCapsule:
		if len(dims) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "capsule needs 2 dimensions, got %d", len(dims))
		}
		return Capsule{Radius: dims[0], Length: dims[1]}, nil
	case ShapePlane:
		if len(dims) != 5 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "plane needs 5 dimensions, got %d", len(dims))
		}
		return Plane{Normal: mgl64.Vec3{dims[0], dims[1], dims[2]}, Width: dims[3], Height: dims[4]}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidShape, "unknown shape type %q", typ)
	}
}

// Box is an axis-aligned box with full side lengths.
type Box struct {
	Size mgl64.Vec3
}

func (b Box) Type() string { return ShapeBox }

func (b Box) ToSDF(ctx *render.Context) (string, error) {
	return element("<box>", "</box>", fmt.Sprintf("<size>%s</size>", vec3(b.Size))), nil
}

func (b Box) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<box size="%s"/>`, vec3(b.Size)), nil
}

// Sphere is a sphere described by its radius.
type Sphere struct {
	Radius float64
}

func (s Sphere) Type() string { return ShapeSphere }

func (s Sphere) ToSDF(ctx *render.Context) (string, error) {
	return element("<sphere>", "</sphere>", fmt.Sprintf("<radius>%s</radius>", f(s.Radius))), nil
}

func (s Sphere) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<sphere radius="%s"/>`, f(s.Radius)), nil
}

// Cylinder is a cylinder along its local z axis.
type Cylinder struct {
	Radius float64
	Length float64
}

func (c Cylinder) Type() string { return ShapeCylinder }

func (c Cylinder) ToSDF(ctx *render.Context) (string, error) {
	return element("<cylinder>", "</cylinder>",
		fmt.Sprintf("<radius>%s</radius>", f(c.Radius)),
		fmt.Sprintf("<length>%s</length>", f(c.Length)),
	), nil
}

func (c Cylinder) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<cylinder radius="%s" length="%s"/>`, f(c.Radius), f(c.Length)), nil
}

// Capsule is a cylinder with hemispherical end caps along its local z axis.
type Capsule struct {
	Radius float64
	Length float64
}

func (c Capsule) Type() string { return ShapeCapsule }

func (c Capsule) ToSDF(ctx *render.Context) (string, error) {
	return element("<capsule>", "</capsule>",
		fmt.Sprintf("<radius>%s</radius>", f(c.Radius)),
		fmt.Sprintf("<length>%s</length>", f(c.Length)),
	), nil
}

func (c Capsule) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<capsule radius="%s" length="%s"/>`, f(c.Radius), f(c.Length)), nil
}

// Plane is an infinite plane clipped to width x height for rendering.
type Plane struct {
	Normal mgl64.Vec3
	Width  float64
	Height float64
}

func (p Plane) Type() string { return ShapePlane }

func (p Plane) ToSDF(ctx *render.Context) (string, error) {
	return element("<plane>", "</plane>",
		fmt.Sprintf("<normal>%s</normal>", vec3(p.Normal)),
		fmt.Sprintf("<size>%s %s</size>", f(p.Width), f(p.Height)),
	), nil
}

func (p Plane) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<plane normal="%s" size="%s %s"/>`, vec3(p.Normal), f(p.Width), f(p.Height)), nil
}

// Mesh references an external mesh resource with a per-axis scale.
type Mesh struct {
	URI   string
	Scale mgl64.Vec3
}

// NewMesh creates a mesh shape with unit scale.
func NewMesh(uri string) Mesh {
	return Mesh{URI: uri, Scale: mgl64.Vec3{1, 1, 1}}
}

func (m Mesh) Type() string { return ShapeMesh }

func (m Mesh) ToSDF(ctx *render.Context) (string, error) {
	return element("<mesh>", "</mesh>",
		fmt.Sprintf("<uri>%s</uri>", m.URI),
		fmt.Sprintf("<scale>%s</scale>", vec3(m.Scale)),
	), nil
}

func (m Mesh) ToURDF(ctx *render.Context) (string, error) {
	return fmt.Sprintf(`<mesh filename="%s" scale="%s"/>`, m.URI, vec3(m.Scale)), nil
}
