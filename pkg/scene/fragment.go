package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

// indent prefixes every non-empty line of s with levels*2 spaces.
func indent(s string, levels int) string {
	pad := strings.Repeat("  ", levels)
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if ln != "" {
			lines[i] = pad + ln
		}
	}
	return strings.Join(lines, "\n")
}

// element assembles a multi-line XML element from the non-empty fragments in
// parts, indenting them one level. An element with no content self-closes.
func element(open, closing string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return strings.TrimSuffix(open, ">") + "/>"
	}
	return open + "\n" + indent(strings.Join(kept, "\n"), 1) + "\n" + closing
}

// vec3 formats a vector as three space-separated literals.
func vec3(v mgl64.Vec3) string {
	return pose.FormatFloat(v.X()) + " " + pose.FormatFloat(v.Y()) + " " + pose.FormatFloat(v.Z())
}

// boolStr renders a flag the way both formats spell booleans.
func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// f is shorthand for the shared deterministic float formatter.
func f(x float64) string {
	return pose.FormatFloat(x)
}

// sdfAll renders every entity to the nesting format, dropping empty
// fragments and stopping at the first hard failure.
func sdfAll[E render.Entity](ctx *render.Context, items []E) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		frag, err := item.ToSDF(ctx)
		if err != nil {
			return nil, err
		}
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out, nil
}

// urdfAll renders every entity to the flattening format, dropping empty
// fragments and stopping at the first hard failure.
func urdfAll[E render.Entity](ctx *render.Context, items []E) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		frag, err := item.ToURDF(ctx)
		if err != nil {
			return nil, err
		}
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out, nil
}
