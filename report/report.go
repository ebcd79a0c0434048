//Package report renders the outcome of a coalition analysis: a human
//readable summary of the selected partitions on a writer and a CSV export
//of the whole coalition table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cnf/structhash"

	"github.com/Cloud-Coop/cloudcoal/gametheory"
	"github.com/Cloud-Coop/cloudcoal/scenario"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

//experiment couples the inputs that identify a run.
type experiment struct {
	Config   util.RunConfiguration
	Scenario scenario.Scenario
}

//ExperimentID returns a stable fingerprint of the run configuration and the
//scenario, so that exported results can be traced back to their inputs.
func ExperimentID(cfg util.RunConfiguration, s scenario.Scenario) string {
	id, _ := structhash.Hash(experiment{Config: cfg, Scenario: s}, 1)
	return strings.Replace(id, "v1_", "", -1)
}

//Print writes the report of the formed coalitions: every selected partition
//with its payoffs, core diagnostics and the increments with respect to the
//grand coalition and to the all-singletons arrangement, followed by the
//summaries of those two reference arrangements.
func Print(w io.Writer, ncips int, info types.CoalitionFormationInfo) {
	gcid := gametheory.GrandCID(ncips)

	rule := strings.Repeat("#", 80)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "### Report on Formed Coalitions:")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "- Best Partitions:")
	if len(info.BestPartitions) == 0 {
		fmt.Fprintln(w, " * NOT AVAILABLE")
	} else {
		for _, part := range info.BestPartitions {
			printPartition(w, part, info, gcid)
		}
	}

	fmt.Fprintln(w, "- Grand Coalition:")
	if grand, ok := info.Coalitions[gcid]; ok {
		value := 0.0
		groups := make([]string, 0, 1)
		groups = append(groups, payoffGroup(grand, &value))
		fmt.Fprintf(w, " * Payoffs: {%s}\n", strings.Join(groups, ", "))
		fmt.Fprintf(w, " * Value: %g\n", value)
		fmt.Fprintf(w, " * Core exists?: {%t}\n", !grand.CoreEmpty)
		fmt.Fprintf(w, " * Value inside the Core?: {%t}\n", grand.PayoffsInCore)
	} else {
		fmt.Fprintln(w, " * NOT AVAILABLE")
	}

	fmt.Fprintln(w, "- Singleton Coalitions:")
	printSingletons(w, ncips, info)
}

func printPartition(w io.Writer, part types.PartitionInfo, info types.CoalitionFormationInfo, gcid gametheory.CID) {
	bestValue := 0.0
	bestKWatt := 0.0
	groups := make([]string, 0, len(part.Coalitions))
	for _, cid := range part.Coalitions {
		coal := info.Coalitions[cid]
		groups = append(groups, payoffGroup(coal, &bestValue))
		bestKWatt += coal.OptimalAllocation.KWatt
	}
	fmt.Fprintf(w, " * Payoffs: {%s}\n", strings.Join(groups, ", "))
	fmt.Fprintf(w, " * Value: %g\n", bestValue)
	fmt.Fprintf(w, " * Energy Consumption: %g\n", bestKWatt)

	flags := make([]string, 0, len(part.Coalitions))
	for _, cid := range part.Coalitions {
		flags = append(flags, strconv.FormatBool(!info.Coalitions[cid].CoreEmpty))
	}
	fmt.Fprintf(w, " * Core exists?: {%s}\n", strings.Join(flags, ", "))

	flags = flags[:0]
	for _, cid := range part.Coalitions {
		flags = append(flags, strconv.FormatBool(info.Coalitions[cid].PayoffsInCore))
	}
	fmt.Fprintf(w, " * Value inside the Core?: {%s}\n", strings.Join(flags, ", "))

	//Increments with respect to the grand coalition.
	grandValue := 0.0
	groups = groups[:0]
	for _, cid := range part.Coalitions {
		coal := info.Coalitions[cid]
		entries := make([]string, 0, cid.Size())
		for _, p := range sortedPlayers(coal.Payoffs) {
			ref := payoffOf(info, gcid, p)
			entries = append(entries, fmt.Sprintf("%d => %g%%", p, (coal.Payoffs[p]/ref-1)*100.0))
			grandValue += ref
		}
		groups = append(groups, "{"+strings.Join(entries, ", ")+"}")
	}
	fmt.Fprintf(w, " * Payoff increments wrt Grand-Coalition: {%s}\n", strings.Join(groups, ", "))
	fmt.Fprintf(w, " * Value increments wrt Grand-Coalition: %g%%\n", (bestValue/grandValue-1)*100.0)

	//Increments with respect to the all-singletons arrangement.
	singleValue := 0.0
	singleKWatt := 0.0
	groups = groups[:0]
	for _, cid := range part.Coalitions {
		coal := info.Coalitions[cid]
		entries := make([]string, 0, cid.Size())
		for _, p := range sortedPlayers(coal.Payoffs) {
			pcid := gametheory.MakeCID([]int{p})
			ref := payoffOf(info, pcid, p)
			entries = append(entries, fmt.Sprintf("%d => %g%%", p, (coal.Payoffs[p]/ref-1)*100.0))
			singleValue += ref
			singleKWatt += info.Coalitions[pcid].OptimalAllocation.KWatt
		}
		groups = append(groups, "{"+strings.Join(entries, ", ")+"}")
	}
	fmt.Fprintf(w, " * Payoff increments wrt Singleton Coalitions: {%s}\n", strings.Join(groups, ", "))
	fmt.Fprintf(w, " * Value increments wrt Singleton Coalitions: %g%%\n", (bestValue/singleValue-1)*100.0)
	fmt.Fprintf(w, " * Energy savings wrt Singleton Coalitions: %g%%\n", (1-bestKWatt/singleKWatt)*100.0)
}

func printSingletons(w io.Writer, ncips int, info types.CoalitionFormationInfo) {
	value := 0.0
	kwatt := 0.0
	entries := make([]string, 0, ncips)
	for p := 0; p < ncips; p++ {
		pcid := gametheory.MakeCID([]int{p})
		payoff := payoffOf(info, pcid, p)
		entries = append(entries, fmt.Sprintf("{%d => %g}", p, payoff))
		value += payoff
		kwatt += info.Coalitions[pcid].OptimalAllocation.KWatt
	}
	fmt.Fprintf(w, " * Payoffs: {%s}\n", strings.Join(entries, ", "))
	fmt.Fprintf(w, " * Value: %g\n", value)
	fmt.Fprintf(w, " * Energy Consumption: %g\n", kwatt)

	flags := make([]string, 0, ncips)
	for p := 0; p < ncips; p++ {
		flags = append(flags, fmt.Sprintf("{%t}", !info.Coalitions[gametheory.MakeCID([]int{p})].CoreEmpty))
	}
	fmt.Fprintf(w, " * Core exists?: {%s}\n", strings.Join(flags, ", "))

	flags = flags[:0]
	for p := 0; p < ncips; p++ {
		flags = append(flags, fmt.Sprintf("{%t}", info.Coalitions[gametheory.MakeCID([]int{p})].PayoffsInCore))
	}
	fmt.Fprintf(w, " * Value inside the Core?: {%s}\n", strings.Join(flags, ", "))
}

//payoffGroup renders one coalition's payoffs as "{p => v, ...}" and adds
//them to the running total.
func payoffGroup(coal types.CoalitionInfo, total *float64) string {
	entries := make([]string, 0, len(coal.Payoffs))
	for _, p := range sortedPlayers(coal.Payoffs) {
		entries = append(entries, fmt.Sprintf("%d => %g", p, coal.Payoffs[p]))
		*total += coal.Payoffs[p]
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

//payoffOf returns a player's payoff in a coalition, or NaN when the
//coalition has no payoff division for it.
func payoffOf(info types.CoalitionFormationInfo, cid gametheory.CID, p int) float64 {
	if payoff, ok := info.Coalitions[cid].Payoffs[p]; ok {
		return payoff
	}
	return math.NaN()
}

func sortedPlayers(payoffs map[int]float64) []int {
	players := make([]int, 0, len(payoffs))
	for p := range payoffs {
		players = append(players, p)
	}
	sort.Ints(players)
	return players
}

//ExportCSV writes the coalition table to a CSV file: one row per coalition,
//sorted by identifier, with the per-provider payoffs and their sum. In
//append mode an empty separator record is written instead of the header, so
//several iterations of one experiment share a file.
func ExportCSV(fname string, ncips int, info types.CoalitionFormationInfo, appendMode bool) error {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(fname, flags, 0644)
	if err != nil {
		return fmt.Errorf("unable to open output CSV file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if appendMode {
		if err := w.Write(make([]string, ncips+1)); err != nil {
			return err
		}
	} else {
		header := make([]string, 0, ncips+2)
		header = append(header, "Coalition ID")
		for p := 0; p < ncips; p++ {
			header = append(header, fmt.Sprintf("Payoff(CIP %d)", p))
		}
		header = append(header, "Value(Coalition)")
		if err := w.Write(header); err != nil {
			return err
		}
	}

	cids := make([]gametheory.CID, 0, len(info.Coalitions))
	for cid := range info.Coalitions {
		cids = append(cids, cid)
	}
	sort.Slice(cids, func(i, j int) bool { return cids[i] < cids[j] })

	for _, cid := range cids {
		coal := info.Coalitions[cid]
		record := make([]string, 0, ncips+2)
		record = append(record, strconv.FormatUint(uint64(cid), 10))
		value := 0.0
		for p := 0; p < ncips; p++ {
			if payoff, ok := coal.Payoffs[p]; ok {
				record = append(record, strconv.FormatFloat(payoff, 'g', -1, 64))
				value += payoff
			} else {
				record = append(record, "")
			}
		}
		record = append(record, strconv.FormatFloat(value, 'g', -1, 64))
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
