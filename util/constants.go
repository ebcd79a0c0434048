package util

const CONFIG_FILE = "config.yml"
const DEFAULT_LOGFILE = "Logs.log"
const TIME_LAYOUT = "02-01-2006, 15:04:05 MST"

//Coalition formation strategies
const NASH_STABLE_FORMATION = "nash"
const MERGE_SPLIT_STABLE_FORMATION = "merge-split"
const PARETO_OPTIMAL_FORMATION = "pareto"
const SOCIAL_OPTIMUM_FORMATION = "social"

//Coalition value division methods
const BANZHAF_DIVISION = "banzhaf"
const NORM_BANZHAF_DIVISION = "norm-banzhaf"
const SHAPLEY_DIVISION = "shapley"

//Defaults for the run options
const DEFAULT_FORMATION = NASH_STABLE_FORMATION
const DEFAULT_DIVISION = SHAPLEY_DIVISION
const DEFAULT_RELATIVE_GAP = 0.0
const DEFAULT_TIME_LIMIT = -1.0
const DEFAULT_RND_SEED = 5489
const DEFAULT_RND_NUM_ITERS = 1
