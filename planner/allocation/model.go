//Package allocation turns a coalition's pooled machines into a mixed-integer
//placement problem and solves it.
//
//Decision variables of the model: x_h (PM h powered on), y_vh (VM v placed
//on PM h) and s_h (aggregate CPU utilization of PM h, in [0,1]).
//Constraints:
//  C1: every VM is placed on exactly one PM
//  C2: sum_v y_vh <= |V| * x_h
//  C3: sum_v y_vh * RAM(q(v),g(h)) <= x_h
//  C4: sum_v y_vh * CPU(q(v),g(h)) == s_h
//  C5: s_h <= x_h
package allocation

import (
	"github.com/Cloud-Coop/cloudcoal/scenario"
)

//ObjectiveMode selects what the solver minimizes.
type ObjectiveMode int

const (
	//MinCost minimizes the monetary rate: energy cost of the powered PMs,
	//plus switch-on/off costs relative to the baseline power states, plus
	//migration costs of VMs placed outside their origin CIP.
	MinCost ObjectiveMode = iota
	//MinPower minimizes the aggregate power draw only. The monetary cost is
	//recomputed afterwards from the power solution, which is inaccurate
	//whenever switch or migration costs are non-zero.
	MinPower
)

//Model is one coalition's allocation problem. PM and VM entries keep their
//owning CIP and category tags so that electricity, switch and migration
//costs can be charged to the right provider.
type Model struct {
	NumCIPs             int
	CIPElectricityCosts []float64 //[cip] $/kWh

	PMCIPs          []int     //[pm] owning CIP
	PMCategories    []int     //[pm]
	PMPowerStates   []bool    //[pm] baseline state for switch costs
	PMSpecMinPowers []float64 //[pm category] Watt
	PMSpecMaxPowers []float64 //[pm category] Watt

	VMCIPs       []int       //[vm] origin CIP
	VMCategories []int       //[vm]
	VMSpecCPUs   [][]float64 //[vm category][pm category]
	VMSpecRAMs   [][]float64 //[vm category][pm category]

	CIPPMAsleepCosts         [][]float64   //[cip][pm category]
	CIPPMAwakeCosts          [][]float64   //[cip][pm category]
	CIPToCIPVMMigrationCosts [][][]float64 //[origin][destination][vm category]

	Mode ObjectiveMode
}

//NewCoalitionModel pools the PMs and VMs of the given member CIPs into one
//allocation model, preserving the per-unit CIP and category tags.
func NewCoalitionModel(s scenario.Scenario, members []int, mode ObjectiveMode) Model {
	m := Model{
		NumCIPs:                  s.NumCIPs,
		CIPElectricityCosts:      s.CIPElectricityCosts,
		PMSpecMinPowers:          s.PMSpecMinPowers,
		PMSpecMaxPowers:          s.PMSpecMaxPowers,
		VMSpecCPUs:               s.VMSpecCPUs,
		VMSpecRAMs:               s.VMSpecRAMs,
		CIPPMAsleepCosts:         s.CIPPMAsleepCosts,
		CIPPMAwakeCosts:          s.CIPPMAwakeCosts,
		CIPToCIPVMMigrationCosts: s.CIPToCIPVMMigrationCosts,
		Mode:                     mode,
	}

	for _, cip := range members {
		pmIndex := 0
		for p := 0; p < s.NumPMTypes; p++ {
			for k := 0; k < s.CIPNumPMs[cip][p]; k++ {
				m.PMCIPs = append(m.PMCIPs, cip)
				m.PMCategories = append(m.PMCategories, p)
				m.PMPowerStates = append(m.PMPowerStates, s.CIPPMPowerStates[cip][pmIndex])
				pmIndex++
			}
		}
		for v := 0; v < s.NumVMTypes; v++ {
			for k := 0; k < s.CIPNumVMs[cip][v]; k++ {
				m.VMCIPs = append(m.VMCIPs, cip)
				m.VMCategories = append(m.VMCategories, v)
			}
		}
	}
	return m
}

//NumPMs returns the number of pooled physical machines.
func (m Model) NumPMs() int { return len(m.PMCIPs) }

//NumVMs returns the number of pooled virtual machines.
func (m Model) NumVMs() int { return len(m.VMCIPs) }

//PMConsumedPower is the linear power model of a PM: the draw interpolates
//between the idle minimum and the full-load maximum with CPU utilization u.
func PMConsumedPower(minPower float64, maxPower float64, u float64) float64 {
	return minPower + (maxPower-minPower)*u
}
