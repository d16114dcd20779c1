package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenesmith/scenesmith/pkg/validate"
)

// newValidateCmd creates the validate command for checking scene structure.
// Every finding is reported; the command fails when any finding exists so
// that scripts can gate on the exit code.
func newValidateCmd() *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a scene file for structural problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0], separator)
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", "scope separator used for flat-name collision checks (default \".\")")

	return cmd
}

func runValidate(ctx context.Context, input, separator string) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Validating %s", input)

	m, err := loadScene(input)
	if err != nil {
		return err
	}

	var opts []validate.Option
	if separator != "" {
		opts = append(opts, validate.WithSeparator(separator))
	}

	problems := validate.Check(m, opts...)
	if len(problems) == 0 {
		printSuccess("%s is structurally valid", m.Name)
		return nil
	}

	for _, p := range problems {
		printError("%s: %s", p.Path, p.Message)
	}
	return fmt.Errorf("found %d problem(s)", len(problems))
}
