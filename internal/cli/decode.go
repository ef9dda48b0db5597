package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bobfrat/RTI/internal/instrument"
	"github.com/Bobfrat/RTI/internal/pingorder"
)

// DecodeResult holds a decoded CEPO string.
type DecodeResult struct {
	Cepo        string         `json:"cepo"`
	Serial      string         `json:"serial"`
	Regenerated string         `json:"regenerated"`
	Records     []RecordReport `json:"records"`
}

// RecordReport describes one decoded subsystem configuration.
type RecordReport struct {
	CepoIndex   int    `json:"cepo_index"`
	Code        string `json:"code"`
	ConfigIndex int    `json:"config_index"`
	Description string `json:"description"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	var serial string

	cmd := &cobra.Command{
		Use:   "decode <cepo>",
		Short: "Decode a CEPO string into subsystem configurations",
		Long: `Validate and decode a CEPO string against the subsystem catalog of
the unit identified by --serial. Prints one configuration record per
character in ping order, and the CEPO string regenerated from the
records (always identical to the input for a valid string).

Exit codes:
  0 - string decoded
  1 - string failed validation
  2 - command error (malformed serial number)

Example:
  rti decode 232 --serial 01230000000000000000000000000001`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args[0], serial, cmd)
		},
	}

	cmd.Flags().StringVar(&serial, "serial", "", "32-character unit serial number (required)")
	_ = cmd.MarkFlagRequired("serial")

	return cmd
}

func runDecode(opts *RootOptions, cepo, serial string, cmd *cobra.Command) error {
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

	store := pingorder.New()
	if _, ok := store.SetCEPO(cepo, sn); !ok {
		details := ValidationResult{
			Cepo:    cepo,
			Serial:  sn.String(),
			Invalid: invalidCodes(cepo, sn),
		}
		_ = formatter.Error(ErrCodeValidate, fmt.Sprintf("CEPO string %q failed validation", cepo), details)
		return NewExitError(ExitFailure, "validation failed")
	}

	result := DecodeResult{
		Cepo:        store.CEPO(),
		Serial:      sn.String(),
		Regenerated: store.RegenerateCEPO(),
		Records:     make([]RecordReport, 0, store.Len()),
	}
	for _, rec := range store.InPingOrder() {
		result.Records = append(result.Records, RecordReport{
			CepoIndex:   rec.CepoIndex,
			Code:        string(rec.Subsystem.Code),
			ConfigIndex: rec.ConfigIndex,
			Description: rec.Subsystem.Description(),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "CEPO %s on unit %d: %d configurations\n", result.Cepo, sn.Serial(), len(result.Records))
	for _, rec := range result.Records {
		fmt.Fprintf(w, "  slot %d: subsystem %s config %d  %s\n",
			rec.CepoIndex, rec.Code, rec.ConfigIndex, rec.Description)
	}
	fmt.Fprintf(w, "Regenerated: %s\n", result.Regenerated)
	return nil
}
