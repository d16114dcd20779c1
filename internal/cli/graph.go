package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenesmith/scenesmith/pkg/kingraph"
)

const (
	graphFormatDOT = "dot"
	graphFormatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string // output file path
	format    string // "dot" or "svg"
	detailed  bool   // include joint types and geometry counts in labels
	separator string // scope separator for flattened node names
}

// newGraphCmd creates the graph command for drawing the kinematic tree.
// DOT output is written directly; SVG output goes through Graphviz, which
// can take a moment on large trees, so a spinner runs while it works.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: graphFormatSVG}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Draw the kinematic tree as a DOT or SVG diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != graphFormatDOT && opts.format != graphFormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include joint types and geometry counts in labels")
	cmd.Flags().StringVar(&opts.separator, "separator", "", "scope separator for flattened node names (default \".\")")

	return cmd
}

func runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Graphing %s", input)

	m, err := loadScene(input)
	if err != nil {
		return err
	}

	dot := kingraph.ToDOT(m, kingraph.Options{
		Separator: opts.separator,
		Detailed:  opts.detailed,
	})

	data := []byte(dot)
	if opts.format == graphFormatSVG {
		sp := newSpinnerWithContext(ctx, "Rendering kinematic diagram")
		sp.Start()
		data, err = kingraph.RenderSVG(dot)
		if err != nil {
			sp.StopWithError(fmt.Sprintf("Graphviz failed: %v", err))
			return err
		}
		sp.Stop()
		logger.Debugf("Rendered SVG: %d bytes", len(data))
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	} else if path == "-" {
		path = ""
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	if path != "" {
		printSuccess("Generated %s diagram", opts.format)
		printFile(path)
	}
	return nil
}
