package render

import (
	"testing"

	"github.com/scenesmith/scenesmith/pkg/pose"
)

// stubEntity is a minimal Entity for diagnostics tests.
type stubEntity struct{ name string }

func (s *stubEntity) ToSDF(ctx *Context) (string, error)  { return "<stub/>", nil }
func (s *stubEntity) ToURDF(ctx *Context) (string, error) { return "", nil }

func TestScopedName(t *testing.T) {
	tests := []struct {
		name   string
		scopes []string
		sep    string
		local  string
		want   string
	}{
		{"no scope", nil, ".", "base", "base"},
		{"one scope", []string{"robot"}, ".", "base", "robot.base"},
		{"nested scopes", []string{"world", "arm"}, ".", "wrist", "world.arm.wrist"},
		{"custom separator", []string{"robot"}, "::", "base", "robot::base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(WithSeparator(tt.sep))
			for _, s := range tt.scopes {
				ctx.PushScope(s)
			}
			if got := ctx.ScopedName(tt.local); got != tt.want {
				t.Errorf("ScopedName(%q) = %q, want %q", tt.local, got, tt.want)
			}
		})
	}
}

func TestScopeStackLIFO(t *testing.T) {
	ctx := NewContext()
	ctx.PushScope("a")
	ctx.PushScope("b")
	ctx.PopScope()

	if got := ctx.ScopedName("x"); got != "a.x" {
		t.Errorf("ScopedName after pop = %q, want %q", got, "a.x")
	}

	ctx.PopScope()
	if !ctx.Balanced() {
		t.Error("stacks should be balanced after matching pops")
	}
}

func TestPushPoseComposes(t *testing.T) {
	ctx := NewContext()

	if !ctx.CurrentPose().IsIdentity() {
		t.Fatal("empty stack should yield identity")
	}

	ctx.PushPose(pose.New(1, 0, 0, 0, 0, 0))
	ctx.PushPose(pose.New(0, 2, 0, 0, 0, 0))

	want := pose.New(1, 2, 0, 0, 0, 0)
	if got := ctx.CurrentPose(); !got.ApproxEqual(want, 1e-9) {
		t.Errorf("CurrentPose = %v, want %v", got, want)
	}

	ctx.PopPose()
	want = pose.New(1, 0, 0, 0, 0, 0)
	if got := ctx.CurrentPose(); !got.ApproxEqual(want, 1e-9) {
		t.Errorf("CurrentPose after pop = %v, want %v", got, want)
	}

	ctx.PopPose()
	if !ctx.Balanced() {
		t.Error("stacks should be balanced after matching pops")
	}
}

func TestWarnfAppends(t *testing.T) {
	ctx := NewContext()
	e := &stubEntity{name: "link1"}

	ctx.Warnf(e, "feature %s dropped", "surface")
	ctx.Warnf(e, "another")

	diags := ctx.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("len(Diagnostics) = %d, want 2", len(diags))
	}
	if diags[0].Entity != e {
		t.Error("diagnostic should reference the warned entity")
	}
	if diags[0].Message != "feature surface dropped" {
		t.Errorf("Message = %q", diags[0].Message)
	}
}

func TestDefaultSeparator(t *testing.T) {
	ctx := NewContext()
	ctx.PushScope("m")
	defer ctx.PopScope()

	if got := ctx.ScopedName("l"); got != "m"+DefaultSeparator+"l" {
		t.Errorf("default separator not applied: %q", got)
	}
}
