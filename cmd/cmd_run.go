package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Cloud-Coop/cloudcoal/planner/formation"
	"github.com/Cloud-Coop/cloudcoal/planner/perturbation"
	"github.com/Cloud-Coop/cloudcoal/report"
	"github.com/Cloud-Coop/cloudcoal/scenario"
	"github.com/Cloud-Coop/cloudcoal/types"
	"github.com/Cloud-Coop/cloudcoal/util"
)

// runCmd represents the coalition analysis command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a coalition analysis",
	Long: "Analyze every coalition of the scenario's providers, divide the " +
		"coalition values into payoffs and select the stable partitions",
	Run: runAnalysis,
}

func init() {
	runCmd.Flags().String("config-file", "", "Run configuration file path")
	runCmd.Flags().String("scenario", "", "Scenario file path")
	runCmd.Flags().String("formation", util.DEFAULT_FORMATION,
		"Coalition formation strategy: 'nash'|'merge-split'|'pareto'|'social'")
	runCmd.Flags().String("payoff", util.DEFAULT_DIVISION,
		"Coalition value division method: 'banzhaf'|'norm-banzhaf'|'shapley'")
	runCmd.Flags().Float64("opt-relgap", util.DEFAULT_RELATIVE_GAP,
		"Relative gap between the optimum and the accepted solutions, in [0,1]")
	runCmd.Flags().Float64("opt-tilim", util.DEFAULT_TIME_LIMIT,
		"Time limit in seconds for one allocation solve; non-positive means unbounded")
	runCmd.Flags().String("csv", "", "Output CSV file for the coalition table")
	runCmd.Flags().String("log-file", "", "Log file path")
	runCmd.Flags().Int("workers", 0, "Number of parallel coalition solvers; 0 uses all CPUs")
	runCmd.Flags().Bool("rnd-gen-vms", false, "Randomly draw the number of VMs of each provider")
	runCmd.Flags().Bool("rnd-gen-pms-on-off", false, "Randomly draw the baseline power state of each PM")
	runCmd.Flags().Bool("rnd-gen-pms-on-off-costs", false, "Randomly draw the PM switch-on/off costs")
	runCmd.Flags().Bool("rnd-gen-vms-migr-costs", false, "Randomly draw the CIP-to-CIP VM migration costs")
	runCmd.Flags().Int("rnd-num-it", util.DEFAULT_RND_NUM_ITERS, "Number of Monte-Carlo iterations")
	runCmd.Flags().Int64("rnd-seed", util.DEFAULT_RND_SEED, "Seed of the random generators")
}

func runAnalysis(cmd *cobra.Command, args []string) {
	cfg := loadRunConfiguration(cmd)
	setLogger(cfg.LogFile)

	scen, err := scenario.ReadScenarioFile(cfg.ScenarioFile)
	check(err, "The scenario file could not be processed.")

	selector, err := formation.NewPartitionSelector(cfg.Formation)
	check(err, "The formation strategy could not be set up.")
	analyzer := formation.NewAnalyzer(cfg)

	log.Infof("Starting experiment %s: %d providers, formation %q, payoff division %q",
		report.ExperimentID(cfg, scen), scen.NumCIPs, cfg.Formation, cfg.PayoffDivision)

	generator := perturbation.NewGenerator(scen, cfg.Perturbation)
	for it := 0; it < generator.NumIterations(); it++ {
		wrkScen := generator.Next()
		log.Infof("Iteration %d of %d", it+1, generator.NumIterations())

		game, coalitions, err := analyzer.AnalyzeCoalitions(wrkScen)
		check(err, "The coalition analysis failed.")

		info := types.CoalitionFormationInfo{
			Coalitions:     coalitions,
			BestPartitions: selector.Select(game, coalitions),
		}
		report.Print(os.Stdout, wrkScen.NumCIPs, info)
		if cfg.CSVFile != "" {
			check(report.ExportCSV(cfg.CSVFile, wrkScen.NumCIPs, info, it > 0),
				"The CSV export failed.")
		}
	}
}

//loadRunConfiguration reads the optional configuration file and then applies
//the command line flags on top of it, so flags always win.
func loadRunConfiguration(cmd *cobra.Command) util.RunConfiguration {
	cfg := util.NewRunConfiguration()
	if configFile, _ := cmd.Flags().GetString("config-file"); configFile != "" {
		var err error
		cfg, err = util.ReadConfigFile(configFile)
		check(err, "The configuration file could not be processed.")
	}

	flags := cmd.Flags()
	if flags.Changed("scenario") {
		cfg.ScenarioFile, _ = flags.GetString("scenario")
	}
	if flags.Changed("formation") {
		cfg.Formation, _ = flags.GetString("formation")
	}
	if flags.Changed("payoff") {
		cfg.PayoffDivision, _ = flags.GetString("payoff")
	}
	if flags.Changed("opt-relgap") {
		cfg.OptRelativeGap, _ = flags.GetFloat64("opt-relgap")
	}
	if flags.Changed("opt-tilim") {
		cfg.OptTimeLimit, _ = flags.GetFloat64("opt-tilim")
	}
	if flags.Changed("csv") {
		cfg.CSVFile, _ = flags.GetString("csv")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("rnd-gen-vms") {
		cfg.Perturbation.GenVMs, _ = flags.GetBool("rnd-gen-vms")
	}
	if flags.Changed("rnd-gen-pms-on-off") {
		cfg.Perturbation.GenPMPowerStates, _ = flags.GetBool("rnd-gen-pms-on-off")
	}
	if flags.Changed("rnd-gen-pms-on-off-costs") {
		cfg.Perturbation.GenPMOnOffCosts, _ = flags.GetBool("rnd-gen-pms-on-off-costs")
	}
	if flags.Changed("rnd-gen-vms-migr-costs") {
		cfg.Perturbation.GenVMMigrationCosts, _ = flags.GetBool("rnd-gen-vms-migr-costs")
	}
	if flags.Changed("rnd-num-it") {
		cfg.Perturbation.NumIterations, _ = flags.GetInt("rnd-num-it")
	}
	if flags.Changed("rnd-seed") {
		cfg.Perturbation.Seed, _ = flags.GetInt64("rnd-seed")
	}

	check(cfg.Validate(), "The run options are not valid.")
	if cfg.ScenarioFile == "" {
		log.Fatalf("No scenario file was given.")
	}
	return cfg
}
