package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenesmith/scenesmith/pkg/render"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // document formats: "sdf", "urdf"
	separator string   // scope separator for flattened names
}

// newConvertCmd creates the convert command for rendering scene files to
// SDF or URDF documents.
//
// Default settings:
//   - format: sdf
//   - output: derived from the input file name
func newConvertCmd() *cobra.Command {
	var formatsStr string
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Render a scene file to SDF or URDF document(s)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runConvert(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "document format(s): sdf (default), urdf (comma-separated)")
	cmd.Flags().StringVar(&opts.separator, "separator", "", "scope separator for flattened names (default \".\")")

	return cmd
}

// parseFormats parses the --format flag into a slice of document formats.
// If empty, defaults to ["sdf"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{scene.FormatSDF}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported document formats.
var validFormats = map[string]bool{scene.FormatSDF: true, scene.FormatURDF: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'sdf' or 'urdf')", f)
		}
	}
	return nil
}

// runConvert loads the scene from input and renders it to every requested
// format. Diagnostics recorded during rendering are shown as warnings; a
// hard render failure aborts without writing partial output.
func runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Converting %s", input)

	m, err := loadScene(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded scene %q: %d links, %d joints", m.Name, len(m.Links), len(m.Joints))

	prog := newProgress(logger)
	for _, format := range opts.formats {
		if err := convertOne(ctx, m, format, input, opts); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d document(s)", len(opts.formats)))
	return nil
}

// convertOne renders a single format and writes it to its output path.
func convertOne(ctx context.Context, m *scene.Model, format, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	var renderOpts []render.Option
	if opts.separator != "" {
		renderOpts = append(renderOpts, render.WithSeparator(opts.separator))
	}

	doc, diags, err := m.ToDocument(format, renderOpts...)
	if err != nil {
		return err
	}
	for _, d := range diags {
		printWarning("%s", d.Message)
	}
	logger.Debugf("Generated %s: %d bytes", format, len(doc))

	path := outputPath(format, input, opts)
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write([]byte(doc)); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}

// outputPath picks the file to write a format to. "-" means stdout; an
// explicit --output is honored verbatim for a single format and used as a
// base path for multiple formats.
func outputPath(format, input string, opts *convertOpts) string {
	if opts.output == "-" {
		return ""
	}
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input, validFormats) + "." + format
}
