package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/render"
)

func TestShapeFromType(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		dims     []float64
		wantType string
		wantErr  bool
	}{
		{"box", ShapeBox, []float64{1, 2, 3}, ShapeBox, false},
		{"sphere", ShapeSphere, []float64{0.5}, ShapeSphere, false},
		{"cylinder", ShapeCylinder, []float64{0.1, 1}, ShapeCylinder, false},
		{"capsule", ShapeCapsule, []float64{0.1, 1}, ShapeCapsule, false},
		{"plane", ShapePlane, []float64{0, 0, 1, 10, 10}, ShapePlane, false},

		{"box wrong dims", ShapeBox, []float64{1}, "", true},
		{"sphere wrong dims", ShapeSphere, nil, "", true},
		{"unknown", "torus", []float64{1}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ShapeFromType(tt.typ, tt.dims...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ShapeFromType error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidShape) {
					t.Errorf("error code = %v, want INVALID_SHAPE", errors.GetCode(err))
				}
				return
			}
			if s.Type() != tt.wantType {
				t.Errorf("Type = %q, want %q", s.Type(), tt.wantType)
			}
		})
	}
}

func TestShapeRendering(t *testing.T) {
	ctx := render.NewContext()
	tests := []struct {
		name     string
		shape    Shape
		wantSDF  string
		wantURDF string
	}{
		{
			"box",
			Box{Size: mgl64.Vec3{1, 2, 3}},
			"<size>1 2 3</size>",
			`<box size="1 2 3"/>`,
		},
		{
			"sphere",
			Sphere{Radius: 0.5},
			"<radius>0.5</radius>",
			`<sphere radius="0.5"/>`,
		},
		{
			"cylinder",
			Cylinder{Radius: 0.1, Length: 2},
			"<length>2</length>",
			`<cylinder radius="0.1" length="2"/>`,
		},
		{
			"capsule",
			Capsule{Radius: 0.1, Length: 2},
			"<radius>0.1</radius>",
			`<capsule radius="0.1" length="2"/>`,
		},
		{
			"mesh",
			Mesh{URI: "meshes/arm.dae", Scale: mgl64.Vec3{1, 1, 2}},
			"<uri>meshes/arm.dae</uri>",
			`<mesh filename="meshes/arm.dae" scale="1 1 2"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdf, err := tt.shape.ToSDF(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(sdf, tt.wantSDF) {
				t.Errorf("SDF missing %s:\n%s", tt.wantSDF, sdf)
			}

			urdf, err := tt.shape.ToURDF(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if urdf != tt.wantURDF {
				t.Errorf("URDF = %s, want %s", urdf, tt.wantURDF)
			}
		})
	}
}

func TestPhongDowngradesInURDF(t *testing.T) {
	ctx := render.NewContext()
	p := Phong{Diffuse: Color{0.5, 0.5, 0.5, 1}, Specular: Color{1, 1, 1, 1}}

	frag, err := p.ToURDF(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if frag != `<color rgba="0.5 0.5 0.5 1"/>` {
		t.Errorf("Phong should keep diffuse only, got %s", frag)
	}
	if len(ctx.Diagnostics()) == 0 {
		t.Error("expected a diagnostic for dropped Phong terms")
	}
}

func TestVisualMaterialWrappedInURDF(t *testing.T) {
	m := &Model{
		Name: "m",
		Links: []*Link{{
			Name: "l",
			Visuals: []*Visual{{
				Name:     "v",
				Shape:    Sphere{Radius: 1},
				Material: Color{0, 1, 0, 1},
			}},
		}},
	}

	doc, _, err := m.ToURDFDocument()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `<material name="m.v_material">`) {
		t.Errorf("material wrapper missing:\n%s", doc)
	}
	if !strings.Contains(doc, `<color rgba="0 1 0 1"/>`) {
		t.Errorf("color missing:\n%s", doc)
	}
}

func TestCameraSensorSDFOnly(t *testing.T) {
	cam := &CameraSensor{
		SensorName:    "eye",
		HorizontalFOV: 1.047,
		ImageWidth:    640,
		ImageHeight:   480,
		ClipNear:      0.1,
		ClipFar:       100,
	}

	sdf, err := cam.ToSDF(render.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<sensor name="eye" type="camera">`,
		"<horizontal_fov>1.047</horizontal_fov>",
		"<width>640</width>",
		"<far>100</far>",
	} {
		if !strings.Contains(sdf, want) {
			t.Errorf("missing %s in:\n%s", want, sdf)
		}
	}

	ctx := render.NewContext()
	frag, err := cam.ToURDF(ctx)
	if err != nil || frag != "" {
		t.Errorf("camera in URDF should drop with diagnostic, got %q, %v", frag, err)
	}
	if len(ctx.Diagnostics()) != 1 {
		t.Errorf("expected one diagnostic, got %d", len(ctx.Diagnostics()))
	}
}

func TestFromSimpleShape(t *testing.T) {
	link := FromSimpleShape("crate", pose.Identity(), Box{Size: mgl64.Vec3{1, 1, 1}}, Color{1, 0, 0, 1})

	if link.Name != "crate" {
		t.Errorf("Name = %q", link.Name)
	}
	if len(link.Collisions) != 1 || link.Collisions[0].Name != "crate_collision" {
		t.Errorf("collision = %+v", link.Collisions)
	}
	if len(link.Visuals) != 1 || link.Visuals[0].Name != "crate_visual" {
		t.Errorf("visual = %+v", link.Visuals)
	}
	if link.Inertial == nil || link.Inertial.Mass != 0 {
		t.Error("simple links get a massless inertial by default")
	}
}
