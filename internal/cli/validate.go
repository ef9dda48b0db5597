package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bobfrat/RTI/internal/instrument"
	"github.com/Bobfrat/RTI/internal/pingorder"
)

// ValidationResult holds a CEPO validation verdict.
type ValidationResult struct {
	Cepo    string          `json:"cepo"`
	Serial  string          `json:"serial"`
	Valid   bool            `json:"valid"`
	Invalid []InvalidCode `json:"invalid,omitempty"`
}

// InvalidCode names one CEPO character that failed validation and
// where it sits in the string.
type InvalidCode struct {
	Code     string `json:"code"`
	Position int    `json:"position"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var serial string

	cmd := &cobra.Command{
		Use:   "validate <cepo>",
		Short: "Validate a CEPO string against a serial number",
		Long: `Validate a CEPO (Ensemble Ping Order) string against the subsystem
catalog of the unit identified by --serial. Every character of the
string must name a subsystem present on the unit.

Exit codes:
  0 - string is valid
  1 - string failed validation
  2 - command error (malformed serial number)

Example:
  rti validate 232 --serial 01230000000000000000000000000001`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], serial, cmd)
		},
	}

	cmd.Flags().StringVar(&serial, "serial", "", "32-character unit serial number (required)")
	_ = cmd.MarkFlagRequired("serial")

	return cmd
}

func runValidate(opts *RootOptions, cepo, serial string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sn, err := instrument.ParseSerialNumber(serial)
	if err != nil {
		_ = formatter.Error(ErrCodeSerial, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid serial number", err)
	}

	result := ValidationResult{
		Cepo:   cepo,
		Serial: sn.String(),
		Valid:  pingorder.ValidateCEPO(cepo, sn),
	}
	if !result.Valid {
		result.Invalid = invalidCodes(cepo, sn)
	}

	if result.Valid {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ %q is valid for unit %d\n", cepo, sn.Serial())
		return nil
	}

	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeValidate, fmt.Sprintf("CEPO string %q failed validation", cepo), result)
		return NewExitError(ExitFailure, "validation failed")
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✗ %q is not valid\n", cepo)
	if cepo == "" {
		fmt.Fprintln(w, "  the CEPO string must not be empty")
	}
	for _, bad := range result.Invalid {
		fmt.Fprintf(w, "  position %d: no subsystem with code %q on this unit\n", bad.Position, bad.Code)
	}
	return NewExitError(ExitFailure, "validation failed")
}

// invalidCodes lists the characters of cepo that resolve to nothing in
// sn's catalog, with their positions.
func invalidCodes(cepo string, sn instrument.SerialNumber) []InvalidCode {
	var bad []InvalidCode
	for i := 0; i < len(cepo); i++ {
		if sn.SubsystemForCode(cepo[i]).IsEmpty() {
			bad = append(bad, InvalidCode{Code: string(cepo[i]), Position: i})
		}
	}
	return bad
}
