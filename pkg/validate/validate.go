// Package validate implements an optional structural check a caller may run
// before rendering a scene. The renderer itself never validates
// cross-references: joint parent/child links are plain name strings, and
// dangling ones render fine in both formats. This pass finds the problems
// that would make the flattened output ambiguous or the kinematic tree
// unresolvable.
package validate

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/render"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// WorldLink is the implicit anchor name joints may reference as a parent
// without a matching link.
const WorldLink = "world"

// Problem is one finding of the validation pass.
type Problem struct {
	// Path is the flattened name of the offending entity.
	Path string
	// Message describes the finding.
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Option configures a validation pass.
type Option func(*checker)

// WithSeparator sets the separator used to build flattened names, matching
// the one the caller will render with. The default is the render package's
// default.
func WithSeparator(sep string) Option {
	return func(c *checker) { c.sep = sep }
}

type checker struct {
	sep      string
	problems []Problem
	// flat namespace of every link and joint after flattening
	names map[string]string // flattened name -> kind
}

// Check validates a model tree and returns all findings. An empty slice
// means the model renders unambiguously in both formats.
func Check(m *scene.Model, opts ...Option) []Problem {
	c := &checker{sep: render.DefaultSeparator, names: make(map[string]string)}
	for _, opt := range opts {
		opt(c)
	}
	c.model(m, "")
	return c.problems
}

func (c *checker) addf(path, format string, args ...any) {
	c.problems = append(c.problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
}

// claim registers a flattened name and reports a collision when the single
// flat namespace already holds it.
func (c *checker) claim(path, kind string) {
	if prev, ok := c.names[path]; ok {
		c.addf(path, "flattened name collides with %s of the same name", prev)
		return
	}
	c.names[path] = kind
}

func (c *checker) model(m *scene.Model, prefix string) {
	scopedPrefix := m.Name
	if prefix != "" {
		scopedPrefix = prefix + c.sep + m.Name
	}

	// Local link names, for resolving joint references within this model.
	local := make(map[string]bool, len(m.Links))
	for _, l := range m.Links {
		if l.Name == "" {
			c.addf(scopedPrefix, "link has no name")
			continue
		}
		local[l.Name] = true
		c.claim(scopedPrefix+c.sep+l.Name, "link")
	}

	for _, j := range m.Joints {
		if j.Name == "" {
			c.addf(scopedPrefix, "joint has no name")
			continue
		}
		path := scopedPrefix + c.sep + j.Name
		c.claim(path, "joint")

		if j.Parent == "" {
			c.addf(path, "joint has no parent link")
		} else if !local[j.Parent] && j.Parent != WorldLink {
			c.addf(path, "parent link %q does not exist in model %q", j.Parent, m.Name)
		}
		if j.Child == "" {
			c.addf(path, "joint has no child link")
		} else if !local[j.Child] {
			c.addf(path, "child link %q does not exist in model %q", j.Child, m.Name)
		}
		if j.Info == nil {
			c.addf(path, "joint has no kinematic info")
		}
	}

	for _, sub := range m.Models {
		c.model(sub, scopedPrefix)
	}
}
