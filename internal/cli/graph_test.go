package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunGraphDOT(t *testing.T) {
	input := writeTestScene(t)
	output := filepath.Join(t.TempDir(), "bot.dot")

	opts := graphOpts{output: output, format: graphFormatDOT, detailed: true}
	if err := runGraph(context.Background(), input, &opts); err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph kinematics {") {
		t.Errorf("output is not a DOT digraph:\n%s", dot)
	}
	if !strings.Contains(dot, `"box_bot.base" -> "box_bot.arm"`) {
		t.Errorf("output missing joint edge:\n%s", dot)
	}
}

func TestRunGraphDerivesOutputPath(t *testing.T) {
	input := writeTestScene(t)

	opts := graphOpts{format: graphFormatDOT}
	if err := runGraph(context.Background(), input, &opts); err != nil {
		t.Fatalf("runGraph() error: %v", err)
	}

	derived := strings.TrimSuffix(input, ".json") + ".dot"
	if _, err := os.Stat(derived); err != nil {
		t.Errorf("derived output not written: %v", err)
	}
}
