// Command passfilter checks password uniqueness with a bloom filter and
// compares unique-counting methods over access logs.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iryna-kyryllova/passfilter"
	"github.com/iryna-kyryllova/passfilter/internal/accesslog"
	"github.com/iryna-kyryllova/passfilter/internal/config"
	"github.com/iryna-kyryllova/passfilter/internal/logger"
	"github.com/iryna-kyryllova/passfilter/uniques"
)

var (
	configPath string
	debug      bool
	seedFile   string
)

func main() {
	root := &cobra.Command{
		Use:   "passfilter",
		Short: "Password uniqueness checks and unique-count comparison",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger.Init(&logger.Options{
				Level:      level,
				TimeFormat: time.RFC3339,
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")

	check := &cobra.Command{
		Use:   "check [passwords...]",
		Short: "Classify candidate passwords as unique, already used or invalid",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	check.Flags().StringVar(&seedFile, "seed", "", "file of known passwords, one per line")

	count := &cobra.Command{
		Use:   "count <logfile>",
		Short: "Compare exact and HyperLogLog unique IP counts for an access log",
		Args:  cobra.ExactArgs(1),
		RunE:  runCount,
	}

	root.AddCommand(check, count)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func buildFilter(cfg *config.Config) (*passfilter.Filter, error) {
	hash := passfilter.XXH3
	if cfg.Filter.Hash == "murmur3" {
		hash = passfilter.Murmur3
	}

	if cfg.Filter.Size == 0 {
		size, numHashes, _ := passfilter.OptimalParams(cfg.Filter.ExpectedItems, cfg.Filter.FPRate)
		return passfilter.NewWithHash(int(size), int(numHashes), hash)
	}
	return passfilter.NewWithHash(cfg.Filter.Size, cfg.Filter.NumHashes, hash)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f, err := buildFilter(cfg)
	if err != nil {
		return err
	}
	slog.Debug("filter created", "size", f.Size(), "numHashes", f.NumHashes())

	if seedFile != "" {
		known, err := readLines(seedFile)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		for _, password := range known {
			f.Add(password)
		}
		slog.Debug("filter seeded", "passwords", len(known), "setBits", f.SetBits())
	}

	for _, r := range passfilter.Classify(f, args) {
		fmt.Printf("Password '%s' - %s.\n", r.Candidate, r.Status)
	}

	slog.Debug("classification done",
		"candidates", len(args),
		"estimatedFPRate", f.EstimatedFalsePositiveRate())
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ips, err := accesslog.LoadIPs(args[0])
	if err != nil {
		return fmt.Errorf("load access log: %w", err)
	}
	slog.Debug("access log loaded", "path", args[0], "addresses", len(ips))

	c := uniques.Compare(ips, cfg.Estimator.TargetError)

	fmt.Println("Comparison results:")
	fmt.Printf("%-25s%-20s%-20s\n", "", "Exact", "HyperLogLog")
	fmt.Printf("%-25s%-20d%-20.0f\n", "Unique elements", c.Exact, c.Estimated)
	fmt.Printf("%-25s%-20.3f%-20.3f\n", "Elapsed (sec.)",
		c.ExactElapsed.Seconds(), c.EstimatedElapsed.Seconds())
	return nil
}

// readLines returns the non-empty lines of a text file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
