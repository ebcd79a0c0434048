//Package types holds the result structures shared between the coalition
//analysis and the reporting layer.
package types

import (
	"math"

	"github.com/Cloud-Coop/cloudcoal/gametheory"
)

//OptimalAllocationInfo is the outcome of one allocation solve for one
//coalition. Immutable once produced.
type OptimalAllocationInfo struct {
	Solved          bool
	Optimal         bool
	ObjectiveValue  float64
	Cost            float64   //monetary rate of the allocation ($/hour)
	KWatt           float64   //aggregate power draw of the powered PMs
	PMPowerStates   []bool    //[pm] decided power state
	PMVMAllocations [][]bool  //[pm][vm] placement matrix
}

//NewOptimalAllocationInfo returns an unsolved result with infinite costs.
func NewOptimalAllocationInfo() OptimalAllocationInfo {
	return OptimalAllocationInfo{
		ObjectiveValue: math.Inf(1),
		Cost:           math.Inf(1),
		KWatt:          math.Inf(1),
	}
}

//CIPAllocationInfo summarizes one provider's share of a coalition's
//allocation, for diagnostics and the energy figures of the report.
type CIPAllocationInfo struct {
	NumOnPMs int     //number of powered-on PMs owned by the CIP
	NumVMs   int     //number of VMs hosted on the CIP's PMs
	TotWatt  float64 //power drawn by the CIP's PMs (Watt)
}

//CoalitionInfo is the per-coalition record stored in the coalition table.
//Created once during enumeration, never mutated afterwards.
type CoalitionInfo struct {
	CID               gametheory.CID
	OptimalAllocation OptimalAllocationInfo
	Value             float64
	CoreEmpty         bool
	Payoffs           map[int]float64 //one entry per member CIP, when computed
	PayoffsInCore     bool
	CIPAllocations    map[int]CIPAllocationInfo
}

//PartitionInfo is a candidate partition of the full provider set: pairwise
//disjoint coalitions that jointly cover every CIP.
type PartitionInfo struct {
	Value      float64
	Coalitions []gametheory.CID
	Payoffs    map[int]float64
}

//CoalitionFormationInfo is the externally consumed output of the analysis:
//the table of every visited coalition plus the selected best partitions.
type CoalitionFormationInfo struct {
	Coalitions     map[gametheory.CID]CoalitionInfo
	BestPartitions []PartitionInfo
}
