package util

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//Struct that models the random perturbation settings of an experiment
type PerturbationSettings struct {
	GenVMs              bool `yaml:"gen-vms"`
	GenPMPowerStates    bool `yaml:"gen-pm-power-states"`
	GenPMOnOffCosts     bool `yaml:"gen-pm-on-off-costs"`
	GenVMMigrationCosts bool `yaml:"gen-vm-migration-costs"`
	Seed                int64 `yaml:"seed"`
	NumIterations       int  `yaml:"num-iterations"`
}

//Struct that models the options of a coalition analysis run
type RunConfiguration struct {
	ScenarioFile       string               `yaml:"scenario-file"`
	Formation          string               `yaml:"formation"`
	PayoffDivision     string               `yaml:"payoff-division"`
	OptRelativeGap     float64              `yaml:"opt-relative-gap"`
	OptTimeLimit       float64              `yaml:"opt-time-limit"`
	CSVFile            string               `yaml:"csv-file"`
	LogFile            string               `yaml:"log-file"`
	Workers            int                  `yaml:"workers"`
	Perturbation       PerturbationSettings `yaml:"perturbation"`
}

//NewRunConfiguration returns a configuration filled with the default options
func NewRunConfiguration() RunConfiguration {
	return RunConfiguration{
		Formation:      DEFAULT_FORMATION,
		PayoffDivision: DEFAULT_DIVISION,
		OptRelativeGap: DEFAULT_RELATIVE_GAP,
		OptTimeLimit:   DEFAULT_TIME_LIMIT,
		Perturbation: PerturbationSettings{
			Seed:          DEFAULT_RND_SEED,
			NumIterations: DEFAULT_RND_NUM_ITERS,
		},
	}
}

//Method that parses the run configuration file into a struct type
func ReadConfigFile(configFile string) (RunConfiguration, error) {
	runConfig := NewRunConfiguration()
	source, err := os.ReadFile(configFile)
	if err != nil {
		return runConfig, fmt.Errorf("there was a problem reading the configuration file: %v", err)
	}
	err = yaml.Unmarshal(source, &runConfig)
	if err != nil {
		return runConfig, fmt.Errorf("there was a problem parsing the configuration file: %v", err)
	}
	return runConfig, runConfig.Validate()
}

//Validate checks that the selected strategies exist and the solver
//parameters are inside their documented ranges
func (cfg RunConfiguration) Validate() error {
	switch cfg.Formation {
	case NASH_STABLE_FORMATION, MERGE_SPLIT_STABLE_FORMATION, PARETO_OPTIMAL_FORMATION, SOCIAL_OPTIMUM_FORMATION:
	default:
		return fmt.Errorf("unknown coalition formation strategy %q", cfg.Formation)
	}
	switch cfg.PayoffDivision {
	case BANZHAF_DIVISION, NORM_BANZHAF_DIVISION, SHAPLEY_DIVISION:
	default:
		return fmt.Errorf("unknown coalition value division method %q", cfg.PayoffDivision)
	}
	if cfg.OptRelativeGap < 0 || cfg.OptRelativeGap > 1 {
		return fmt.Errorf("opt-relative-gap must be in [0,1], got %g", cfg.OptRelativeGap)
	}
	if cfg.Perturbation.NumIterations < 1 {
		return fmt.Errorf("num-iterations must be positive, got %d", cfg.Perturbation.NumIterations)
	}
	return nil
}
