package kingraph

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/scene"
)

func sampleModel(t *testing.T) *scene.Model {
	t.Helper()
	inc, err := scene.NewInclude("ground", "model://ground_plane")
	if err != nil {
		t.Fatal(err)
	}
	return &scene.Model{
		Name: "bot",
		Links: []*scene.Link{
			{Name: "base"},
			{Name: "arm", Collisions: []*scene.Collision{{Name: "c", Shape: scene.Sphere{Radius: 1}}}},
		},
		Joints: []*scene.Joint{{
			Name:   "shoulder",
			Parent: "base",
			Child:  "arm",
			Info:   scene.RevoluteJointInfo{Axis: mgl64.Vec3{0, 0, 1}},
		}},
		Models: []*scene.Model{{
			Name:  "gripper",
			Links: []*scene.Link{{Name: "palm"}},
			Joints: []*scene.Joint{{
				Name:   "mount",
				Parent: "world",
				Child:  "palm",
				Info:   scene.FixedJointInfo{},
			}},
		}},
		Includes: []*scene.Include{inc},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleModel(t), Options{})

	for _, want := range []string{
		"digraph kinematics {",
		`"bot.base" [label="base"];`,
		`"bot.arm" [label="arm"];`,
		`"bot.base" -> "bot.arm" [label="shoulder"];`,
		`subgraph "cluster_bot.gripper" {`,
		`"bot.gripper.palm" [label="palm"];`,
		`"world" -> "bot.gripper.palm" [label="mount"];`,
		`"bot.ground" [label="ground", style="rounded,filled,dashed", fillcolor=lightgrey];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %s in:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleModel(t), Options{Detailed: true})

	if !strings.Contains(dot, `label="arm\ncollisions: 1\nvisuals: 0"`) {
		t.Errorf("detailed link label missing in:\n%s", dot)
	}
	if !strings.Contains(dot, `label="shoulder\n(revolute)"`) {
		t.Errorf("detailed joint label missing in:\n%s", dot)
	}
}

func TestToDOTCustomSeparator(t *testing.T) {
	dot := ToDOT(sampleModel(t), Options{Separator: "::"})

	if !strings.Contains(dot, `"bot::gripper::palm"`) {
		t.Errorf("custom separator not applied:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	m := sampleModel(t)
	if ToDOT(m, Options{}) != ToDOT(m, Options{}) {
		t.Error("repeated renders must be byte-identical")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">\n</svg>`)
	out := normalizeViewBox(in)

	if !strings.Contains(string(out), `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}
}
