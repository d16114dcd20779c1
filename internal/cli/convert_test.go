package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scenesmith/scenesmith/pkg/scene"
	"github.com/scenesmith/scenesmith/pkg/sceneio"
)

func writeTestScene(t *testing.T) string {
	t.Helper()
	doc := sceneio.ModelDoc{
		Name: "box_bot",
		Links: []sceneio.LinkDoc{
			{Name: "base"},
			{Name: "arm"},
		},
		Joints: []sceneio.JointDoc{{
			Name:   "shoulder",
			Type:   scene.JointRevolute,
			Parent: "base",
			Child:  "arm",
			Axis:   []float64{0, 0, 1},
		}},
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "box_bot.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"default", "", []string{"sdf"}},
		{"single", "urdf", []string{"urdf"}},
		{"multiple", "sdf,urdf", []string{"sdf", "urdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"sdf", "urdf"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"sdf", "collada"}); err == nil {
		t.Error("invalid format should be rejected")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		opts convertOpts
		want string
	}{
		{"stdout", convertOpts{output: "-", formats: []string{"sdf"}}, ""},
		{"explicit single", convertOpts{output: "out.xml", formats: []string{"sdf"}}, "out.xml"},
		{"derived", convertOpts{formats: []string{"sdf"}}, "robot.sdf"},
		{"multiple", convertOpts{formats: []string{"sdf", "urdf"}}, "robot.sdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath("sdf", "robot.json", &tt.opts); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunConvert(t *testing.T) {
	input := writeTestScene(t)
	base := strings.TrimSuffix(input, ".json")

	opts := convertOpts{formats: []string{scene.FormatSDF, scene.FormatURDF}}
	if err := runConvert(context.Background(), input, &opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	sdf, err := os.ReadFile(base + ".sdf")
	if err != nil {
		t.Fatalf("missing sdf output: %v", err)
	}
	if !strings.Contains(string(sdf), `<model name="box_bot">`) {
		t.Errorf("sdf output missing model element:\n%s", sdf)
	}

	urdf, err := os.ReadFile(base + ".urdf")
	if err != nil {
		t.Fatalf("missing urdf output: %v", err)
	}
	if !strings.Contains(string(urdf), `<robot name="box_bot">`) {
		t.Errorf("urdf output missing robot element:\n%s", urdf)
	}
}

func TestRunConvertCustomSeparator(t *testing.T) {
	input := writeTestScene(t)
	output := filepath.Join(t.TempDir(), "out.urdf")

	opts := convertOpts{
		output:    output,
		formats:   []string{scene.FormatURDF},
		separator: "::",
	}
	if err := runConvert(context.Background(), input, &opts); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<link name="box_bot::base"/>`) {
		t.Errorf("separator not applied:\n%s", data)
	}
}

func TestRunConvertMissingFile(t *testing.T) {
	opts := convertOpts{formats: []string{scene.FormatSDF}}
	if err := runConvert(context.Background(), filepath.Join(t.TempDir(), "absent.json"), &opts); err == nil {
		t.Error("runConvert should fail for a missing input file")
	}
}
