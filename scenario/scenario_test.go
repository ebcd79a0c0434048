package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScenarioFile(t *testing.T) {
	s, err := ReadScenarioFile("testdata/two_cips.yml")
	require.NoError(t, err)

	assert.Equal(t, 2, s.NumCIPs)
	assert.Equal(t, 1, s.NumPMTypes)
	assert.Equal(t, 1, s.NumVMTypes)
	assert.Equal(t, 2, s.CIPNumVMs[0][0])
	assert.Equal(t, 1, s.NumPMsOf(0))
	assert.Equal(t, 2, s.NumVMsOf(0))
	assert.Equal(t, 100.0, s.PMSpecMinPowers[0])

	//Defaults: all PMs off, zero switch and migration costs.
	require.Len(t, s.CIPPMPowerStates, 2)
	assert.Equal(t, []bool{false}, s.CIPPMPowerStates[0])
	assert.Equal(t, 0.0, s.CIPPMAsleepCosts[1][0])
	assert.Equal(t, 0.0, s.CIPPMAwakeCosts[0][0])
	assert.Equal(t, 0.0, s.CIPToCIPVMMigrationCosts[0][1][0])
}

func TestReadScenarioFileMissing(t *testing.T) {
	_, err := ReadScenarioFile("testdata/no_such_file.yml")
	assert.Error(t, err)
}

func TestValidateCatchesBadDimensions(t *testing.T) {
	s, err := ReadScenarioFile("testdata/two_cips.yml")
	require.NoError(t, err)

	bad := s.Clone()
	bad.CIPRevenues = bad.CIPRevenues[:1]
	assert.Error(t, bad.Validate())

	bad = s.Clone()
	bad.CIPPMPowerStates[0] = []bool{false, true}
	assert.Error(t, bad.Validate())

	bad = s.Clone()
	bad.NumCIPs = 0
	assert.Error(t, bad.Validate())
}

func TestCloneIsDeep(t *testing.T) {
	s, err := ReadScenarioFile("testdata/two_cips.yml")
	require.NoError(t, err)

	c := s.Clone()
	c.CIPNumVMs[0][0] = 99
	c.CIPPMPowerStates[1][0] = true
	c.CIPToCIPVMMigrationCosts[0][1][0] = 7

	assert.Equal(t, 2, s.CIPNumVMs[0][0])
	assert.False(t, s.CIPPMPowerStates[1][0])
	assert.Equal(t, 0.0, s.CIPToCIPVMMigrationCosts[0][1][0])
}
