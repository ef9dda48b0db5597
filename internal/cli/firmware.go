package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bobfrat/RTI/internal/instrument"
)

// FirmwareResult holds a decoded firmware version.
type FirmwareResult struct {
	Version       string `json:"version"`
	Major         uint8  `json:"major"`
	Minor         uint8  `json:"minor"`
	Revision      uint8  `json:"revision"`
	SubsystemCode string `json:"subsystem_code,omitempty"`
}

// NewFirmwareCommand creates the firmware command.
func NewFirmwareCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firmware <hex-bytes>",
		Short: "Decode a firmware version",
		Long: `Decode the fixed 4-byte firmware version layout from 8 hex digits:
major, minor, revision, then the subsystem type code the image was
built for (zero when the image is not subsystem-specific).

Example:
  rti firmware 00020703
  rti firmware 00020732 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFirmware(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runFirmware(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := hex.DecodeString(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeFirmware, fmt.Sprintf("not a hex string: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid firmware bytes", err)
	}

	fw, err := instrument.DecodeFirmware(data)
	if err != nil {
		_ = formatter.Error(ErrCodeFirmware, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid firmware bytes", err)
	}

	result := FirmwareResult{
		Version:  fw.String(),
		Major:    fw.Major,
		Minor:    fw.Minor,
		Revision: fw.Revision,
	}
	if fw.SubsystemCode != 0 {
		result.SubsystemCode = string(fw.SubsystemCode)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Firmware: %s\n", result.Version)
	if result.SubsystemCode != "" {
		fmt.Fprintf(formatter.Writer, "Built for: %s\n", instrument.DescribeCode(fw.SubsystemCode))
	}
	return nil
}
