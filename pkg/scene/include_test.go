package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

func TestIncludeSDF(t *testing.T) {
	inc, err := NewInclude("table", "model://table",
		WithIncludePose(pose.New(1, 2, 0, 0, 0, 0)),
		WithScale(mgl64.Vec3{2, 2, 1}),
		WithIncludeStatic(),
	)
	if err != nil {
		t.Fatal(err)
	}

	frag, err := inc.ToSDF(render.NewContext())
	if err != nil {
		t.Fatalf("ToSDF: %v", err)
	}
	for _, want := range []string{
		`<include name="table">`,
		"<uri>model://table</uri>",
		"<static>true</static>",
		"<scale>2 2 1</scale>",
		"<pose>1 2 0 0 0 0</pose>",
	} {
		if !strings.Contains(frag, want) {
			t.Errorf("missing %s in:\n%s", want, frag)
		}
	}
}

func TestIncludeUniformScaleSDF(t *testing.T) {
	inc, err := NewInclude("cup", "model://cup", WithUniformScale(0.5))
	if err != nil {
		t.Fatal(err)
	}

	frag, err := inc.ToSDF(render.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(frag, "<scale>0.5</scale>") {
		t.Errorf("uniform scale not rendered as a single literal:\n%s", frag)
	}
}

func TestIncludeURDFIsHardFailure(t *testing.T) {
	inc, err := NewInclude("table", "model://table")
	if err != nil {
		t.Fatal(err)
	}

	frag, err := inc.ToURDF(render.NewContext())
	if err == nil {
		t.Fatal("expected hard failure")
	}
	if frag != "" {
		t.Errorf("no partial output allowed, got %q", frag)
	}
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error code = %v, want UNSUPPORTED", errors.GetCode(err))
	}
}

func TestIncludeScaleExclusive(t *testing.T) {
	_, err := NewInclude("x", "model://x",
		WithScale(mgl64.Vec3{2, 2, 2}),
		WithUniformScale(3),
	)
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("expected INVALID_SCALE, got %v", err)
	}

	_, err = NewInclude("x", "model://x",
		WithUniformScale(3),
		WithScale(mgl64.Vec3{2, 2, 2}),
	)
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("expected INVALID_SCALE for reversed order, got %v", err)
	}
}

func TestIncludeUniformScaleAccessor(t *testing.T) {
	vec, err := NewInclude("a", "model://a", WithScale(mgl64.Vec3{2, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vec.UniformScale(); !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("UniformScale on vector-scaled include must fail, got %v", err)
	}
	if got := vec.Scale(); got != (mgl64.Vec3{2, 3, 4}) {
		t.Errorf("Scale = %v", got)
	}

	uni, err := NewInclude("b", "model://b", WithUniformScale(2))
	if err != nil {
		t.Fatal(err)
	}
	s, err := uni.UniformScale()
	if err != nil || s != 2 {
		t.Errorf("UniformScale = %v, %v", s, err)
	}
	if got := uni.Scale(); got != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("Scale = %v, want uniform expansion", got)
	}
}

func TestIncludeContentResolution(t *testing.T) {
	inc, err := NewInclude("c", "model://c")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := inc.Content(); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unresolved content must fail with NOT_FOUND, got %v", err)
	}

	sub := &Model{Name: "sub"}
	inc.SetContent(sub)
	got, err := inc.Content()
	if err != nil {
		t.Fatal(err)
	}
	if got != render.Entity(sub) {
		t.Error("Content should return the attached entity")
	}
}

func TestIncludeDefaultUnitScale(t *testing.T) {
	inc, err := NewInclude("d", "model://d")
	if err != nil {
		t.Fatal(err)
	}
	frag, err := inc.ToSDF(render.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(frag, "<scale>1 1 1</scale>") {
		t.Errorf("default scale should be unit vector:\n%s", frag)
	}
	if strings.Contains(frag, "<pose>") {
		t.Errorf("absent pose must be omitted:\n%s", frag)
	}
}
