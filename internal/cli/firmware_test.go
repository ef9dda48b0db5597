package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirmwareCommand_SubsystemSpecific(t *testing.T) {
	// 0x32 is the ASCII code '2'.
	stdout, _, err := executeCommand(t, "firmware", "00020732")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0.2.7 - 2")
	assert.Contains(t, stdout, "1200 kHz")
}

func TestFirmwareCommand_Generic(t *testing.T) {
	stdout, _, err := executeCommand(t, "firmware", "01040200")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.4.2")
	assert.NotContains(t, stdout, "Built for")
}

func TestFirmwareCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "firmware", "00020732", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result FirmwareResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "0.2.7 - 2", result.Version)
	assert.Equal(t, uint8(0), result.Major)
	assert.Equal(t, uint8(2), result.Minor)
	assert.Equal(t, uint8(7), result.Revision)
	assert.Equal(t, "2", result.SubsystemCode)
}

func TestFirmwareCommand_NotHex(t *testing.T) {
	_, _, err := executeCommand(t, "firmware", "zzzzzzzz")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFirmwareCommand_WrongLength(t *testing.T) {
	_, _, err := executeCommand(t, "firmware", "0002")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
