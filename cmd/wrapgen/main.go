package main

import (
	"io"
	"log/slog"
	"os"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/origadmin/wrapgen/internal/config"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

var rootCmd = &cobra.Command{
	Use:               config.Application,
	Short:             config.Description,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// logCloser holds the log file opened by setupLogging, if any.
var logCloser io.Closer

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	rootCmd.Version = buildVersion(version, commit, date, builtBy, treeState).GitVersion

	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
	logFile, _ := cmd.Root().PersistentFlags().GetString("log-file")

	var logWriter io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logCloser = f
		logWriter = f
	}

	logLevel := slog.LevelWarn
	if debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return nil
}

// useColor resolves the --color flag against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
