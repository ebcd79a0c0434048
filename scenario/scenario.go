//Package scenario loads and validates the description of an experiment: the
//cloud infrastructure providers (CIPs), their physical and virtual machines,
//and every cost table the coalition analysis needs. The analysis only ever
//sees a fully populated, validated Scenario value.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//Scenario describes one experiment. Slices indexed per CIP (c), PM type (p)
//and VM type (v). Monetary rates are $/hour, power figures are Watts,
//electricity costs are $/kWh.
type Scenario struct {
	NumCIPs    int `yaml:"num-cips"`
	NumPMTypes int `yaml:"num-pm-types"`
	NumVMTypes int `yaml:"num-vm-types"`

	CIPNumPMs        [][]int  `yaml:"cip-num-pms"`         //[c][p] number of PMs
	CIPNumVMs        [][]int  `yaml:"cip-num-vms"`         //[c][v] number of VMs
	CIPPMPowerStates [][]bool `yaml:"cip-pm-power-states"` //[c][pm] baseline power state

	CIPRevenues         [][]float64 `yaml:"cip-revenues"`          //[c][v] revenue per VM
	CIPElectricityCosts []float64   `yaml:"cip-electricity-costs"` //[c]
	CIPPMAsleepCosts    [][]float64 `yaml:"cip-pm-asleep-costs"`   //[c][p] switch-off cost
	CIPPMAwakeCosts     [][]float64 `yaml:"cip-pm-awake-costs"`    //[c][p] switch-on cost

	CIPToCIPVMMigrationCosts [][][]float64 `yaml:"cip-to-cip-vm-migration-costs"` //[c1][c2][v]

	PMSpecMinPowers []float64 `yaml:"pm-spec-min-powers"` //[p] idle power draw
	PMSpecMaxPowers []float64 `yaml:"pm-spec-max-powers"` //[p] full-load power draw

	VMSpecCPUs [][]float64 `yaml:"vm-spec-cpus"` //[v][p] CPU share on a PM of type p
	VMSpecRAMs [][]float64 `yaml:"vm-spec-rams"` //[v][p] RAM share on a PM of type p
}

//ReadScenarioFile parses a scenario file, fills in the documented defaults
//and validates the result.
func ReadScenarioFile(fname string) (Scenario, error) {
	var s Scenario
	source, err := os.ReadFile(fname)
	if err != nil {
		return s, fmt.Errorf("cannot open scenario file: %v", err)
	}
	if err := yaml.Unmarshal(source, &s); err != nil {
		return s, fmt.Errorf("malformed scenario file: %v", err)
	}
	s.ApplyDefaults()
	return s, s.Validate()
}

//NumPMsOf returns the total number of PMs owned by a CIP, across all types.
func (s Scenario) NumPMsOf(cip int) int {
	total := 0
	for _, n := range s.CIPNumPMs[cip] {
		total += n
	}
	return total
}

//NumVMsOf returns the total number of VMs hosted by a CIP, across all types.
func (s Scenario) NumVMsOf(cip int) int {
	total := 0
	for _, n := range s.CIPNumVMs[cip] {
		total += n
	}
	return total
}

//ApplyDefaults fills the optional tables: all PMs off, zero switch costs and
//zero migration costs.
func (s *Scenario) ApplyDefaults() {
	if len(s.CIPPMPowerStates) == 0 && len(s.CIPNumPMs) == s.NumCIPs {
		s.CIPPMPowerStates = make([][]bool, s.NumCIPs)
		for c := 0; c < s.NumCIPs; c++ {
			s.CIPPMPowerStates[c] = make([]bool, s.NumPMsOf(c))
		}
	}
	if len(s.CIPPMAsleepCosts) == 0 {
		s.CIPPMAsleepCosts = zeroMatrix(s.NumCIPs, s.NumPMTypes)
	}
	if len(s.CIPPMAwakeCosts) == 0 {
		s.CIPPMAwakeCosts = zeroMatrix(s.NumCIPs, s.NumPMTypes)
	}
	if len(s.CIPToCIPVMMigrationCosts) == 0 {
		s.CIPToCIPVMMigrationCosts = make([][][]float64, s.NumCIPs)
		for c := 0; c < s.NumCIPs; c++ {
			s.CIPToCIPVMMigrationCosts[c] = zeroMatrix(s.NumCIPs, s.NumVMTypes)
		}
	}
}

//Validate checks the mandatory fields and every dimension against the
//declared counts. A failure here is fatal before the analysis starts.
func (s Scenario) Validate() error {
	if s.NumCIPs <= 0 {
		return fmt.Errorf("number of CIPs must be a positive number")
	}
	if s.NumPMTypes <= 0 {
		return fmt.Errorf("number of PM types must be a positive number")
	}
	if s.NumVMTypes <= 0 {
		return fmt.Errorf("number of VM types must be a positive number")
	}

	if err := checkMatrixDims("cip-num-pms", len(s.CIPNumPMs), s.NumCIPs, innerIntLens(s.CIPNumPMs), s.NumPMTypes); err != nil {
		return err
	}
	if err := checkMatrixDims("cip-num-vms", len(s.CIPNumVMs), s.NumCIPs, innerIntLens(s.CIPNumVMs), s.NumVMTypes); err != nil {
		return err
	}
	if err := checkMatrixDims("cip-revenues", len(s.CIPRevenues), s.NumCIPs, innerLens(s.CIPRevenues), s.NumVMTypes); err != nil {
		return err
	}
	if len(s.CIPElectricityCosts) != s.NumCIPs {
		return fmt.Errorf("unexpected number of CIP electricity costs")
	}
	if err := checkMatrixDims("cip-pm-asleep-costs", len(s.CIPPMAsleepCosts), s.NumCIPs, innerLens(s.CIPPMAsleepCosts), s.NumPMTypes); err != nil {
		return err
	}
	if err := checkMatrixDims("cip-pm-awake-costs", len(s.CIPPMAwakeCosts), s.NumCIPs, innerLens(s.CIPPMAwakeCosts), s.NumPMTypes); err != nil {
		return err
	}
	if len(s.PMSpecMinPowers) != s.NumPMTypes || len(s.PMSpecMaxPowers) != s.NumPMTypes {
		return fmt.Errorf("unexpected number of PM power consumption specifications")
	}
	if err := checkMatrixDims("vm-spec-cpus", len(s.VMSpecCPUs), s.NumVMTypes, innerLens(s.VMSpecCPUs), s.NumPMTypes); err != nil {
		return err
	}
	if err := checkMatrixDims("vm-spec-rams", len(s.VMSpecRAMs), s.NumVMTypes, innerLens(s.VMSpecRAMs), s.NumPMTypes); err != nil {
		return err
	}

	if len(s.CIPPMPowerStates) != s.NumCIPs {
		return fmt.Errorf("unexpected number of CIP PM power states")
	}
	for c := 0; c < s.NumCIPs; c++ {
		if len(s.CIPPMPowerStates[c]) != s.NumPMsOf(c) {
			return fmt.Errorf("unexpected number of PM power states for CIP %d", c)
		}
	}

	if len(s.CIPToCIPVMMigrationCosts) != s.NumCIPs {
		return fmt.Errorf("unexpected number of CIP-to-CIP VM migration costs")
	}
	for c1 := 0; c1 < s.NumCIPs; c1++ {
		if len(s.CIPToCIPVMMigrationCosts[c1]) != s.NumCIPs {
			return fmt.Errorf("unexpected number of CIP-to-CIP VM migration costs for CIP %d", c1)
		}
		for c2 := 0; c2 < s.NumCIPs; c2++ {
			if len(s.CIPToCIPVMMigrationCosts[c1][c2]) != s.NumVMTypes {
				return fmt.Errorf("unexpected number of VM types in migration costs for CIPs %d->%d", c1, c2)
			}
		}
	}
	return nil
}

//Clone returns a deep copy, used by the Monte-Carlo perturbation so that the
//base scenario stays untouched across iterations.
func (s Scenario) Clone() Scenario {
	out := s
	out.CIPNumPMs = cloneIntMatrix(s.CIPNumPMs)
	out.CIPNumVMs = cloneIntMatrix(s.CIPNumVMs)
	out.CIPPMPowerStates = cloneBoolMatrix(s.CIPPMPowerStates)
	out.CIPRevenues = cloneMatrix(s.CIPRevenues)
	out.CIPElectricityCosts = append([]float64(nil), s.CIPElectricityCosts...)
	out.CIPPMAsleepCosts = cloneMatrix(s.CIPPMAsleepCosts)
	out.CIPPMAwakeCosts = cloneMatrix(s.CIPPMAwakeCosts)
	out.PMSpecMinPowers = append([]float64(nil), s.PMSpecMinPowers...)
	out.PMSpecMaxPowers = append([]float64(nil), s.PMSpecMaxPowers...)
	out.VMSpecCPUs = cloneMatrix(s.VMSpecCPUs)
	out.VMSpecRAMs = cloneMatrix(s.VMSpecRAMs)
	out.CIPToCIPVMMigrationCosts = make([][][]float64, len(s.CIPToCIPVMMigrationCosts))
	for i, m := range s.CIPToCIPVMMigrationCosts {
		out.CIPToCIPVMMigrationCosts[i] = cloneMatrix(m)
	}
	return out
}

func checkMatrixDims(name string, outer int, wantOuter int, inner []int, wantInner int) error {
	if outer != wantOuter {
		return fmt.Errorf("unexpected number of rows in %s: got %d, want %d", name, outer, wantOuter)
	}
	for i, n := range inner {
		if n != wantInner {
			return fmt.Errorf("unexpected number of columns in %s row %d: got %d, want %d", name, i, n, wantInner)
		}
	}
	return nil
}

func innerLens(m [][]float64) []int {
	lens := make([]int, len(m))
	for i, row := range m {
		lens[i] = len(row)
	}
	return lens
}

func innerIntLens(m [][]int) []int {
	lens := make([]int, len(m))
	for i, row := range m {
		lens[i] = len(row)
	}
	return lens
}

func zeroMatrix(rows int, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func cloneIntMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func cloneBoolMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
