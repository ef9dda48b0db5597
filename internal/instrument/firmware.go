package instrument

import (
	"errors"
	"fmt"
)

// FirmwareLength is the fixed encoded size of a firmware version.
const FirmwareLength = 4

// ErrFirmwareLength reports a firmware buffer of the wrong size.
var ErrFirmwareLength = errors.New("firmware version must be exactly 4 bytes")

// Firmware is a decoded firmware version. The wire layout is fixed at four
// bytes: major, minor, revision, then the subsystem type code the image was
// built for. A zero code byte means the image is not subsystem-specific.
type Firmware struct {
	Major         uint8
	Minor         uint8
	Revision      uint8
	SubsystemCode byte
}

// DecodeFirmware decodes the fixed 4-byte layout.
func DecodeFirmware(data []byte) (Firmware, error) {
	if len(data) != FirmwareLength {
		return Firmware{}, fmt.Errorf("%w: got %d", ErrFirmwareLength, len(data))
	}
	return Firmware{
		Major:         data[0],
		Minor:         data[1],
		Revision:      data[2],
		SubsystemCode: data[3],
	}, nil
}

// Encode returns the fixed 4-byte layout for fw.
func (fw Firmware) Encode() []byte {
	return []byte{fw.Major, fw.Minor, fw.Revision, fw.SubsystemCode}
}

// String renders the version as "major.minor.revision - code", omitting the
// code suffix when the image is not subsystem-specific.
func (fw Firmware) String() string {
	if fw.SubsystemCode == 0 {
		return fmt.Sprintf("%d.%d.%d", fw.Major, fw.Minor, fw.Revision)
	}
	return fmt.Sprintf("%d.%d.%d - %c", fw.Major, fw.Minor, fw.Revision, fw.SubsystemCode)
}
