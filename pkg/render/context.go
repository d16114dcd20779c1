// Package render defines the per-invocation state threaded through a scene
// traversal and the dual-format rendering contract every scene entity
// implements.
//
// A Context is created fresh for each top-level render call and must not be
// shared between concurrent renders. The entity tree itself is read-only
// during rendering, so independent renders of the same tree may run
// concurrently as long as each gets its own Context.
package render

import (
	"fmt"

	"github.com/scenesmith/scenesmith/pkg/pose"
)

// DefaultSeparator joins scope prefixes with local names when a nested model
// is flattened into the single URDF namespace.
const DefaultSeparator = "."

// Entity is any scene node renderable to both target formats.
//
// ToSDF renders the nesting format fragment; ToURDF renders the flattening
// format fragment. Both recursively render owned children in stored order
// and thread the same Context. Fragments carry no trailing newline.
type Entity interface {
	ToSDF(ctx *Context) (string, error)
	ToURDF(ctx *Context) (string, error)
}

// Diagnostic records a non-fatal note that a feature could not be faithfully
// expressed in the target format. Diagnostics never interrupt a traversal.
type Diagnostic struct {
	Entity  Entity
	Message string
}

// Option configures a Context.
type Option func(*Context)

// WithSeparator sets the string used to join scope prefixes when flattening
// nested model names. The default is ".".
func WithSeparator(sep string) Option {
	return func(c *Context) { c.separator = sep }
}

// Context is the mutable per-render state: a name-scope stack, a
// pose-accumulation stack, and an append-only diagnostic list.
//
// Scope and pose entries are mutated only via push/pop pairs; entities are
// expected to pair every push with a deferred pop so the stacks unwind on
// every exit path, including hard failures. Both stacks are empty before and
// after any successful or failed top-level render.
type Context struct {
	separator string
	scopes    []string
	poses     []pose.Pose
	diags     []Diagnostic
}

// NewContext creates an empty render context.
func NewContext(opts ...Option) *Context {
	c := &Context{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ScopedName joins the current scope prefixes and name with the configured
// separator. With an empty scope stack it returns name unchanged.
func (c *Context) ScopedName(name string) string {
	out := name
	for i := len(c.scopes) - 1; i >= 0; i-- {
		out = c.scopes[i] + c.separator + out
	}
	return out
}

// PushScope enters a name scope. Callers must pair it with PopScope.
func (c *Context) PushScope(name string) {
	c.scopes = append(c.scopes, name)
}

// PopScope leaves the innermost name scope.
func (c *Context) PopScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// PushPose composes p with the accumulated pose (identity if the stack is
// empty) and pushes the result. Callers must pair it with PopPose.
func (c *Context) PushPose(p pose.Pose) {
	c.poses = append(c.poses, pose.Compose(c.CurrentPose(), p))
}

// PopPose removes the innermost accumulated pose.
func (c *Context) PopPose() {
	c.poses = c.poses[:len(c.poses)-1]
}

// CurrentPose returns the top of the pose stack, or identity when empty.
func (c *Context) CurrentPose() pose.Pose {
	if len(c.poses) == 0 {
		return pose.Identity()
	}
	return c.poses[len(c.poses)-1]
}

// Warnf appends a diagnostic for entity. It never fails and never aborts the
// render.
func (c *Context) Warnf(entity Entity, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Entity: entity, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns all diagnostics recorded so far, in append order. The
// returned slice is owned by the context; callers must not mutate it.
func (c *Context) Diagnostics() []Diagnostic {
	return c.diags
}

// Balanced reports whether both stacks are empty. It holds before and after
// every top-level render call.
func (c *Context) Balanced() bool {
	return len(c.scopes) == 0 && len(c.poses) == 0
}
