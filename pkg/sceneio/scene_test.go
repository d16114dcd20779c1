package sceneio

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/pose"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// richModel exercises every serializable entity kind.
func richModel(t *testing.T) *scene.Model {
	t.Helper()

	basePose := pose.New(0, 0, 0.1, 0, 0, 0)
	inc, err := scene.NewInclude("ground", "model://ground_plane",
		scene.WithIncludeStatic(), scene.WithUniformScale(2))
	if err != nil {
		t.Fatal(err)
	}

	return &scene.Model{
		Name:   "rig",
		Origin: &basePose,
		Static: true,
		Links: []*scene.Link{
			{
				Name:     "base",
				Inertial: &scene.Inertial{Mass: 2, Inertia: scene.DiagonalInertia(0.1, 0.1, 0.2)},
				Collisions: []*scene.Collision{{
					Name:    "base_collision",
					Shape:   scene.Box{Size: mgl64.Vec3{1, 1, 0.2}},
					Surface: &scene.SurfaceInfo{Contact: &scene.SurfaceContact{}, Friction: &scene.SurfaceFriction{}},
				}},
				Visuals: []*scene.Visual{{
					Name:     "base_visual",
					Shape:    scene.NewMesh("meshes/base.dae"),
					Material: scene.Color{R: 0.2, G: 0.4, B: 0.6, A: 1},
				}},
				Sensors: []scene.Sensor{&scene.CameraSensor{
					SensorName:    "eye",
					HorizontalFOV: 1.047,
					ImageWidth:    640,
					ImageHeight:   480,
					ClipNear:      0.1,
					ClipFar:       100,
				}},
			},
			{Name: "arm"},
		},
		Joints: []*scene.Joint{{
			Name:   "shoulder",
			Parent: "base",
			Child:  "arm",
			Origin: pose.New(0, 0, 0.2, 0, 0, 0),
			Info: scene.RevoluteJointInfo{
				Axis:     mgl64.Vec3{0, 0, 1},
				Limit:    &scene.JointLimit{Lower: -1.5, Upper: 1.5, Effort: 10, Velocity: 1},
				Dynamics: &scene.JointDynamics{Damping: 0.5},
			},
			Mimic: &scene.JointMimic{Joint: "elbow", Multiplier: 2},
		}},
		Models: []*scene.Model{{
			Name:  "gripper",
			Links: []*scene.Link{{Name: "palm"}},
		}},
		Includes: []*scene.Include{inc},
	}
}

func TestSceneRoundTrip(t *testing.T) {
	m := richModel(t)

	doc, err := FromModel(m)
	if err != nil {
		t.Fatalf("FromModel: %v", err)
	}

	m2, err := ToModel(doc)
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	doc2, err := FromModel(m2)
	if err != nil {
		t.Fatalf("FromModel round trip: %v", err)
	}

	if !reflect.DeepEqual(doc, doc2) {
		t.Errorf("round trip diverged:\nfirst:  %+v\nsecond: %+v", doc, doc2)
	}
}

func TestSceneJSONRoundTrip(t *testing.T) {
	m := richModel(t)

	data, err := MarshalScene(m)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}

	m2, err := ReadScene(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}

	data2, err := MarshalScene(m2)
	if err != nil {
		t.Fatalf("MarshalScene round trip: %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Errorf("JSON round trip diverged:\n%s\nvs\n%s", data, data2)
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	m := richModel(t)
	path := filepath.Join(t.TempDir(), "rig.json")

	if err := WriteSceneFile(m, path); err != nil {
		t.Fatalf("WriteSceneFile: %v", err)
	}
	m2, err := ReadSceneFile(path)
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	if m2.Name != "rig" || len(m2.Links) != 2 || len(m2.Models) != 1 {
		t.Errorf("unexpected model after file round trip: %+v", m2)
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	_, err := ReadSceneFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestToModelRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  ModelDoc
		code errors.Code
	}{
		{
			"unnamed model",
			ModelDoc{},
			errors.ErrCodeInvalidScene,
		},
		{
			"short pose",
			ModelDoc{Name: "m", Pose: []float64{1, 2, 3}},
			errors.ErrCodeInvalidScene,
		},
		{
			"unnamed link",
			ModelDoc{Name: "m", Links: []LinkDoc{{}}},
			errors.ErrCodeInvalidScene,
		},
		{
			"unknown shape",
			ModelDoc{Name: "m", Links: []LinkDoc{{
				Name:       "l",
				Collisions: []GeometryDoc{{Name: "c", Shape: ShapeDoc{Type: "torus"}}},
			}}},
			errors.ErrCodeInvalidScene,
		},
		{
			"unknown material",
			ModelDoc{Name: "m", Links: []LinkDoc{{
				Name: "l",
				Visuals: []GeometryDoc{{
					Name:     "v",
					Shape:    ShapeDoc{Type: scene.ShapeSphere, Dims: []float64{1}},
					Material: &MaterialDoc{Type: "chrome"},
				}},
			}}},
			errors.ErrCodeInvalidScene,
		},
		{
			"unnamed joint",
			ModelDoc{Name: "m", Joints: []JointDoc{{Type: scene.JointFixed}}},
			errors.ErrCodeInvalidScene,
		},
		{
			"revolute joint without axis",
			ModelDoc{Name: "m", Joints: []JointDoc{{Name: "j", Type: scene.JointRevolute}}},
			errors.ErrCodeInvalidScene,
		},
		{
			"include without uri",
			ModelDoc{Name: "m", Includes: []IncludeDoc{{Name: "i"}}},
			errors.ErrCodeInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToModel(tt.doc)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestIncludeScaleConflictRejected(t *testing.T) {
	uniform := 2.0
	_, err := ToModel(ModelDoc{
		Name: "m",
		Includes: []IncludeDoc{{
			URI:          "model://thing",
			Scale:        []float64{1, 2, 3},
			UniformScale: &uniform,
		}},
	})
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("error code = %v, want INVALID_SCALE (%v)", errors.GetCode(err), err)
	}
}

func TestIncludeUniformScalePreserved(t *testing.T) {
	uniform := 0.5
	m, err := ToModel(ModelDoc{
		Name:     "m",
		Includes: []IncludeDoc{{URI: "model://thing", UniformScale: &uniform}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Includes[0].UniformScale()
	if err != nil {
		t.Fatalf("UniformScale: %v", err)
	}
	if got != 0.5 {
		t.Errorf("UniformScale = %v, want 0.5", got)
	}

	doc, err := FromModel(m)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Includes[0].UniformScale == nil || *doc.Includes[0].UniformScale != 0.5 {
		t.Errorf("uniform scale lost in document: %+v", doc.Includes[0])
	}
}
