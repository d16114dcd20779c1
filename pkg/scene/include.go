package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// Include references an externally defined sub-model resource with its own
// placement and scale. The renderer never expands the reference; a resolver
// may attach the loaded content via SetContent.
//
// Scale is either a per-axis vector or a single uniform scalar. The two
// representations are mutually exclusive and fixed at construction: the
// scalar path is taken only when WithUniformScale was given.
//
// Only the nesting format has a resource-inclusion mechanism; rendering an
// Include to the flattening format is a hard failure.
type Include struct {
	Name   string
	URI    string
	Origin *pose.Pose
	Parent string
	Static bool

	scale   mgl64.Vec3
	uniform *float64
	content render.Entity
}

// IncludeOption configures an Include at construction.
type IncludeOption func(*Include) error

// WithIncludePose places the included sub-model in its parent's frame.
func WithIncludePose(p pose.Pose) IncludeOption {
	return func(inc *Include) error {
		inc.Origin = &p
		return nil
	}
}

// WithIncludeParent records the name of the parent entity.
func WithIncludeParent(name string) IncludeOption {
	return func(inc *Include) error {
		inc.Parent = name
		return nil
	}
}

// WithIncludeStatic marks the included sub-model as static.
func WithIncludeStatic() IncludeOption {
	return func(inc *Include) error {
		inc.Static = true
		return nil
	}
}

// WithScale sets a per-axis scale. Mutually exclusive with WithUniformScale.
func WithScale(s mgl64.Vec3) IncludeOption {
	return func(inc *Include) error {
		if inc.uniform != nil {
			return errors.New(errors.ErrCodeInvalidScale, "include %q: per-axis and uniform scale are mutually exclusive", inc.Name)
		}
		inc.scale = s
		return nil
	}
}

// WithUniformScale sets a single uniform scale factor. Mutually exclusive
// with WithScale.
func WithUniformScale(s float64) IncludeOption {
	return func(inc *Include) error {
		if inc.scale != (mgl64.Vec3{1, 1, 1}) {
			return errors.New(errors.ErrCodeInvalidScale, "include %q: per-axis and uniform scale are mutually exclusive", inc.Name)
		}
		inc.uniform = &s
		return nil
	}
}

// NewInclude creates an include reference with unit scale.
func NewInclude(name, uri string, opts ...IncludeOption) (*Include, error) {
	inc := &Include{
		Name:  name,
		URI:   uri,
		scale: mgl64.Vec3{1, 1, 1},
	}
	for _, opt := range opts {
		if err := opt(inc); err != nil {
			return nil, err
		}
	}
	return inc, nil
}

// Scale returns the per-axis scale vector. When a uniform scale was
// configured, all three axes carry that factor.
func (inc *Include) Scale() mgl64.Vec3 {
	if inc.uniform != nil {
		s := *inc.uniform
		return mgl64.Vec3{s, s, s}
	}
	return inc.scale
}

// UniformScale returns the uniform scale factor. It is a hard failure when
// the include was configured with a per-axis vector instead.
func (inc *Include) UniformScale() (float64, error) {
	if inc.uniform == nil {
		return 0, errors.New(errors.ErrCodeInvalidScale, "include %q has no uniform scale; use Scale", inc.Name)
	}
	return *inc.uniform, nil
}

// SetContent attaches externally resolved sub-model content. The include
// does not own the content and never renders it.
func (inc *Include) SetContent(content render.Entity) {
	inc.content = content
}

// Content returns the resolved sub-model content, or an error when no
// resolver has attached any.
func (inc *Include) Content() (render.Entity, error) {
	if inc.content == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "include %q content has not been resolved", inc.Name)
	}
	return inc.content, nil
}

func (inc *Include) ToSDF(ctx *render.Context) (string, error) {
	open := "<include>"
	if inc.Name != "" {
		open = fmt.Sprintf(`<include name="%s">`, inc.Name)
	}
	scaleFrag := fmt.Sprintf("<scale>%s</scale>", vec3(inc.scale))
	if inc.uniform != nil {
		scaleFrag = fmt.Sprintf("<scale>%s</scale>", f(*inc.uniform))
	}
	poseFrag := ""
	if inc.Origin != nil {
		poseFrag = inc.Origin.SDF()
	}
	return element(open, "</include>",
		fmt.Sprintf("<uri>%s</uri>", inc.URI),
		fmt.Sprintf("<static>%s</static>", boolStr(inc.Static)),
		scaleFrag,
		poseFrag,
	), nil
}

func (inc *Include) ToURDF(ctx *render.Context) (string, error) {
	return "", errors.New(errors.ErrCodeUnsupported,
		"include %q cannot be rendered to URDF: the format has no resource-inclusion mechanism", inc.Name)
}
