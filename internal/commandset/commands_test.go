package commandset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultPingOrder(t *testing.T) {
	cs := New()
	assert.Equal(t, DefaultCEPO, cs.CEPO())
}

func TestSetCEPO_Replaces(t *testing.T) {
	cs := New()
	cs.SetCEPO("232")
	assert.Equal(t, "232", cs.CEPO())

	cs.SetCEPO("")
	assert.Equal(t, "", cs.CEPO(), "an emptied ping order is stored as-is")
}

func TestCommandStrings(t *testing.T) {
	cs := New()
	cs.SetCEPO("34")

	lines := cs.CommandStrings()
	require.Len(t, lines, 1)
	assert.Equal(t, "CEPO 34", lines[0])
}
