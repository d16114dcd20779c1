package scene

import "github.com/scenesmith/scenesmith/pkg/render"

// SurfaceContact is a placeholder for contact parameters on a collision
// surface. It currently carries no payload and renders to an empty fragment
// in both formats.
type SurfaceContact struct{}

func (s SurfaceContact) ToSDF(ctx *render.Context) (string, error)  { return "", nil }
func (s SurfaceContact) ToURDF(ctx *render.Context) (string, error) { return "", nil }

// SurfaceFriction is a placeholder for friction parameters on a collision
// surface. It currently carries no payload and renders to an empty fragment
// in both formats.
type SurfaceFriction struct{}

func (s SurfaceFriction) ToSDF(ctx *render.Context) (string, error)  { return "", nil }
func (s SurfaceFriction) ToURDF(ctx *render.Context) (string, error) { return "", nil }

// SurfaceInfo groups the contact and friction properties of a collision.
// Only the nesting format can express it.
type SurfaceInfo struct {
	Contact  *SurfaceContact
	Friction *SurfaceFriction
}

func (s *SurfaceInfo) ToSDF(ctx *render.Context) (string, error) {
	parts := make([]string, 0, 2)
	if s.Contact != nil {
		frag, err := s.Contact.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	if s.Friction != nil {
		frag, err := s.Friction.ToSDF(ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, frag)
	}
	return element("<surface>", "</surface>", parts...), nil
}

func (s *SurfaceInfo) ToURDF(ctx *render.Context) (string, error) {
	ctx.Warnf(s, "link surface properties are not supported in URDF")
	return "", nil
}
