package perturbation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-Coop/cloudcoal/scenario"
	"github.com/Cloud-Coop/cloudcoal/util"
)

func baseScenario() scenario.Scenario {
	s := scenario.Scenario{
		NumCIPs:             2,
		NumPMTypes:          1,
		NumVMTypes:          2,
		CIPNumPMs:           [][]int{{3}, {2}},
		CIPNumVMs:           [][]int{{5, 2}, {4, 1}},
		CIPRevenues:         [][]float64{{1, 2}, {1, 2}},
		CIPElectricityCosts: []float64{0.1, 0.2},
		PMSpecMinPowers:     []float64{100},
		PMSpecMaxPowers:     []float64{200},
		VMSpecCPUs:          [][]float64{{0.2}, {0.4}},
		VMSpecRAMs:          [][]float64{{0.1}, {0.2}},
	}
	s.ApplyDefaults()
	return s
}

func TestGeneratorLeavesBaseUntouched(t *testing.T) {
	base := baseScenario()
	gen := NewGenerator(base, util.PerturbationSettings{
		GenVMs:              true,
		GenPMPowerStates:    true,
		GenPMOnOffCosts:     true,
		GenVMMigrationCosts: true,
		Seed:                util.DEFAULT_RND_SEED,
		NumIterations:       3,
	})

	for i := 0; i < gen.NumIterations(); i++ {
		drawn := gen.Next()
		require.NoError(t, drawn.Validate())
	}
	assert.Equal(t, [][]int{{5, 2}, {4, 1}}, base.CIPNumVMs)
	assert.Equal(t, [][]float64{{0}, {0}}, base.CIPPMAsleepCosts)
}

func TestGeneratorVMCountsStayInRange(t *testing.T) {
	base := baseScenario()
	gen := NewGenerator(base, util.PerturbationSettings{
		GenVMs:        true,
		Seed:          42,
		NumIterations: 20,
	})

	for i := 0; i < gen.NumIterations(); i++ {
		drawn := gen.Next()
		for c := 0; c < base.NumCIPs; c++ {
			for v := 0; v < base.NumVMTypes; v++ {
				assert.GreaterOrEqual(t, drawn.CIPNumVMs[c][v], 0)
				assert.LessOrEqual(t, drawn.CIPNumVMs[c][v], base.CIPNumVMs[c][v])
			}
		}
	}
}

func TestGeneratorCostsNonNegativeAndSymmetric(t *testing.T) {
	base := baseScenario()
	gen := NewGenerator(base, util.PerturbationSettings{
		GenPMOnOffCosts:     true,
		GenVMMigrationCosts: true,
		Seed:                7,
	})

	drawn := gen.Next()
	for c := 0; c < base.NumCIPs; c++ {
		for p := 0; p < base.NumPMTypes; p++ {
			assert.GreaterOrEqual(t, drawn.CIPPMAsleepCosts[c][p], 0.0)
			assert.Equal(t, drawn.CIPPMAsleepCosts[c][p], drawn.CIPPMAwakeCosts[c][p])
		}
	}
	for c := 0; c < base.NumCIPs; c++ {
		for v := 0; v < base.NumVMTypes; v++ {
			assert.Zero(t, drawn.CIPToCIPVMMigrationCosts[c][c][v])
		}
	}
	assert.GreaterOrEqual(t, drawn.CIPToCIPVMMigrationCosts[0][1][0], 0.0)
}

func TestGeneratorDeterministicPerSeed(t *testing.T) {
	settings := util.PerturbationSettings{
		GenVMs:              true,
		GenPMPowerStates:    true,
		GenPMOnOffCosts:     true,
		GenVMMigrationCosts: true,
		Seed:                util.DEFAULT_RND_SEED,
		NumIterations:       2,
	}

	first := NewGenerator(baseScenario(), settings)
	second := NewGenerator(baseScenario(), settings)
	for i := 0; i < first.NumIterations(); i++ {
		a := first.Next()
		b := second.Next()
		assert.Equal(t, a.CIPNumVMs, b.CIPNumVMs)
		assert.Equal(t, a.CIPPMPowerStates, b.CIPPMPowerStates)
		assert.Equal(t, a.CIPPMAsleepCosts, b.CIPPMAsleepCosts)
		assert.Equal(t, a.CIPToCIPVMMigrationCosts, b.CIPToCIPVMMigrationCosts)
	}
}

func TestGeneratorIterationCount(t *testing.T) {
	base := baseScenario()

	//Without VM count perturbation the drawn scenarios repeat, so the
	//experiment collapses to a single iteration.
	fixed := NewGenerator(base, util.PerturbationSettings{
		GenPMPowerStates: true,
		NumIterations:    10,
	})
	assert.Equal(t, 1, fixed.NumIterations())

	varying := NewGenerator(base, util.PerturbationSettings{
		GenVMs:        true,
		NumIterations: 10,
	})
	assert.Equal(t, 10, varying.NumIterations())
}
