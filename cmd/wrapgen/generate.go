package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/origadmin/wrapgen/internal/config"
	"github.com/origadmin/wrapgen/internal/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <bindings.rs>",
	Short: "Generate the wrapper package from a declaration corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] <bindings.rs>",
	Short: "Classify a declaration corpus and verify the expected function count",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "output file; defaults to <package>.go next to the corpus")
	generateCmd.Flags().StringP("config", "c", "", "configuration file; defaults to "+config.DefaultFile+" next to the corpus")
	generateCmd.Flags().String("report", "", "write a YAML run report to this file")
	generateCmd.Flags().Bool("check", false, "fail when the classified count differs from expected_functions")

	checkCmd.Flags().StringP("config", "c", "", "configuration file; defaults to "+config.DefaultFile+" next to the corpus")
	checkCmd.Flags().String("report", "", "write a YAML run report to this file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	corpusPath := args[0]
	cfg, res, err := run(cmd, corpusPath)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(corpusPath), cfg.Package+".go")
	}
	slog.Info("Writing generated code", "file", output)
	if err := os.WriteFile(output, res.Code, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := writeReport(cmd, cfg, res); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), res, cfg.ExpectedFunctions, useColor(cmd, os.Stderr))

	if check, _ := cmd.Flags().GetBool("check"); check {
		return res.Verify(cfg.ExpectedFunctions)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, res, err := run(cmd, args[0])
	if err != nil {
		return err
	}
	if err := writeReport(cmd, cfg, res); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), res, cfg.ExpectedFunctions, useColor(cmd, os.Stderr))
	return res.Verify(cfg.ExpectedFunctions)
}

// run loads the configuration and the corpus and generates the package.
func run(cmd *cobra.Command, corpusPath string) (*config.Config, *generator.Result, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath, corpusPath)
	if err != nil {
		return nil, nil, err
	}

	corpus, err := os.ReadFile(corpusPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	slog.Info("Starting generation", "corpus", corpusPath, "package", cfg.Package)

	gen := generator.NewGenerator(cfg)
	if err := gen.SetTemplateDir(cfg.TemplateDir); err != nil {
		return nil, nil, err
	}
	res, err := gen.Generate(corpus)
	if err != nil {
		return nil, nil, fmt.Errorf("code generation failed: %w", err)
	}
	return cfg, res, nil
}

// loadConfig reads path, or the default file next to the corpus when path is
// empty. Without either file the built-in defaults are used.
func loadConfig(path, corpusPath string) (*config.Config, error) {
	if path == "" {
		candidate := filepath.Join(filepath.Dir(corpusPath), config.DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg *config.Config
	if path == "" {
		slog.Debug("No configuration file found, using defaults")
		cfg = config.Default()
	} else {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeReport(cmd *cobra.Command, cfg *config.Config, res *generator.Result) (err error) {
	path, _ := cmd.Flags().GetString("report")
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", cerr)
		}
	}()
	return res.WriteReport(f, cfg.ExpectedFunctions)
}
