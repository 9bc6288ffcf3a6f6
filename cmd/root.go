package cmd

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/routing-sim/cvrp-sim/sim"
	"github.com/routing-sim/cvrp-sim/sim/instance"
	"github.com/routing-sim/cvrp-sim/sim/trace"
)

var (
	// CLI flags shared by run and generate
	seed        int64  // Seed for problem generation and stochastic policies
	logLevel    string // Log verbosity level
	customers   int    // Customers per generated instance
	numProblems int    // Number of generated instances

	// CLI flags for run
	problemsPath string // Problem file (.yaml/.yml/.json); empty = generate
	configPath   string // Optional YAML run bundle
	policyName   string // Decision policy name
	trajectories int    // Trajectories per instance (0 = one per customer)
	workers      int    // Concurrent row partitions per step
	batchSize    int    // Instances per rollout
	augFactor    int    // Augmentation copies per instance
	maxSteps     int    // Step bound per rollout (0 = 4*(P+1))
	traceLevel   string // Trace verbosity
	metricsOut   string // Prometheus text file output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cvrp-sim",
	Short: "Batched simulation environment for the capacitated vehicle routing problem",
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// applyBundle copies bundle values into cfg for every flag the user did
// not set explicitly. Explicit flags always win.
func applyBundle(cmd *cobra.Command, bundle *sim.RunBundle, cfg *EvalConfig) {
	changed := cmd.Flags().Changed
	if bundle.Policy != "" && !changed("policy") {
		cfg.Policy = bundle.Policy
	}
	if bundle.Trajectories != nil && !changed("trajectories") {
		cfg.Trajectories = *bundle.Trajectories
	}
	if bundle.Workers != nil && !changed("workers") {
		cfg.Workers = *bundle.Workers
	}
	if bundle.BatchSize != nil && !changed("batch-size") {
		cfg.BatchSize = *bundle.BatchSize
	}
	if bundle.AugFactor != nil && !changed("aug-factor") {
		cfg.AugFactor = *bundle.AugFactor
	}
	if bundle.MaxSteps != nil && !changed("max-steps") {
		cfg.MaxSteps = *bundle.MaxSteps
	}
	if bundle.Trace != "" && !changed("trace") {
		cfg.TraceLevel = trace.TraceLevel(bundle.Trace)
	}
}

func loadOrGenerate() (*sim.ProblemBatch, error) {
	if problemsPath != "" {
		logrus.Infof("Loading problems from %s", problemsPath)
		return instance.Load(problemsPath)
	}
	rng := sim.NewPartitionedRNG(sim.NewRunKey(seed))
	logrus.Infof("Generating %d problems with %d customers (seed=%d)", numProblems, customers, seed)
	return instance.Generate(rng.ForSubsystem(sim.SubsystemInstances), numProblems,
		instance.GeneratorConfig{Customers: customers})
}

// runCmd evaluates a decision policy over a problem batch
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Roll out a decision policy over a problem batch and report route lengths",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := EvalConfig{
			RunID:        uuid.NewString(),
			Seed:         seed,
			Policy:       policyName,
			Trajectories: trajectories,
			Workers:      workers,
			BatchSize:    batchSize,
			AugFactor:    augFactor,
			MaxSteps:     maxSteps,
			TraceLevel:   trace.TraceLevel(traceLevel),
		}
		if configPath != "" {
			bundle, err := sim.LoadRunBundle(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			if err := bundle.Validate(); err != nil {
				logrus.Fatalf("invalid run config %s: %v", configPath, err)
			}
			applyBundle(cmd, bundle, &cfg)
		}
		if !sim.IsValidPolicy(cfg.Policy) {
			logrus.Fatalf("Unknown policy %q; valid: %s", cfg.Policy, strings.Join(sim.PolicyNames(), ", "))
		}
		if !trace.IsValidTraceLevel(string(cfg.TraceLevel)) {
			logrus.Fatalf("Unknown trace level %q; valid: none, steps", cfg.TraceLevel)
		}

		problems, err := loadOrGenerate()
		if err != nil {
			logrus.Fatalf("Failed to obtain problems: %v", err)
		}

		metrics := sim.NewMetrics()
		logrus.Infof("Starting run %s: policy=%s instances=%d customers=%d",
			cfg.RunID, cfg.Policy, problems.Size(), problems.Customers())
		res, err := evaluate(problems, cfg, metrics)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		if err := printResult(os.Stdout, res); err != nil {
			logrus.Fatalf("%v", err)
		}
		printTraceSummaries(os.Stdout, res.Traces)

		if metricsOut != "" {
			if err := metrics.WriteTextfile(metricsOut); err != nil {
				logrus.Fatalf("Failed to write metrics: %v", err)
			}
		}
		logrus.Info("Run complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for problem generation and stochastic policies")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVar(&customers, "customers", 20, "Customers per generated instance")
	rootCmd.PersistentFlags().IntVar(&numProblems, "num-problems", 100, "Number of generated instances")

	runCmd.Flags().StringVar(&problemsPath, "problems", "", "Problem file (.yaml, .yml, .json); generated when empty")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration; explicit flags override it")
	runCmd.Flags().StringVar(&policyName, "policy", "multi-start", "Decision policy ("+strings.Join(sim.PolicyNames(), ", ")+")")
	runCmd.Flags().IntVar(&trajectories, "trajectories", 0, "Trajectories per instance (0 = one per customer)")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Concurrent row partitions per environment step")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 100, "Instances per rollout")
	runCmd.Flags().IntVar(&augFactor, "aug-factor", 1, "Augmentation copies per instance")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Step bound per rollout (0 = 4*(customers+1))")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, steps)")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
