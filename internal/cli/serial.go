package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bobfrat/RTI/internal/instrument"
)

// SerialReport holds the parsed catalog of one unit.
type SerialReport struct {
	Serial       string            `json:"serial"`
	BaseHardware string            `json:"base_hardware"`
	UnitSerial   int               `json:"unit_serial"`
	Subsystems   []SubsystemReport `json:"subsystems"`
}

// SubsystemReport describes one populated subsystem slot.
type SubsystemReport struct {
	Code         string  `json:"code"`
	Slot         int     `json:"slot"`
	Description  string  `json:"description"`
	FrequencyKHz float64 `json:"frequency_khz,omitempty"`
}

// NewSerialCommand creates the serial command.
func NewSerialCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serial <serial-number>",
		Short: "Inspect a unit's serial number",
		Long: `Parse a 32-character ADCP serial number and report the unit's
subsystem catalog: base hardware family, unit serial digits, and each
populated subsystem slot with its code and type description.

Example:
  rti serial 01230000000000000000000000000001
  rti serial 01230000000000000000000000000001 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSerial(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSerial(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sn, err := instrument.ParseSerialNumber(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeSerial, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid serial number", err)
	}

	report := SerialReport{
		Serial:       sn.String(),
		BaseHardware: sn.BaseHardware(),
		UnitSerial:   sn.Serial(),
		Subsystems:   make([]SubsystemReport, 0, sn.SubsystemCount()),
	}
	for _, sub := range sn.Subsystems() {
		report.Subsystems = append(report.Subsystems, SubsystemReport{
			Code:         string(sub.Code),
			Slot:         sub.Slot,
			Description:  sub.Description(),
			FrequencyKHz: sub.FrequencyKHz(),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Serial:        %s\n", report.Serial)
	fmt.Fprintf(w, "Base hardware: %s\n", report.BaseHardware)
	fmt.Fprintf(w, "Unit serial:   %d\n", report.UnitSerial)
	fmt.Fprintf(w, "Subsystems:    %d\n", len(report.Subsystems))
	for _, sub := range report.Subsystems {
		fmt.Fprintf(w, "  [%2d] %s  %s\n", sub.Slot, sub.Code, sub.Description)
	}
	return nil
}
