// Command wetex extracts and converts Wallpaper Engine PKG/TEX files.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/woozymasta/wetex"
)

var (
	cfg     *Config
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "wetex",
	Short: "Read and convert Wallpaper Engine PKG/TEX files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		level := levelFromName(cfg.LogLevel)
		switch {
		case verbose:
			level = slog.LevelDebug
		case quiet:
			level = slog.LevelError
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// suggestions maps a sentinel error to a one-line remediation hint shown
// alongside the raw error.
var suggestions = map[error]string{
	wetex.ErrInvalidMagic:       "this file may not be a Wallpaper Engine PKG or TEX file",
	wetex.ErrUnsupportedVersion: "this file uses a container version this tool does not recognise",
	wetex.ErrUnsupportedFormat:  "try a different --format, or omit --format to use auto conversion",
	wetex.ErrMalformedPayload:   "the file may be truncated or corrupted",
	wetex.ErrInvalidLZ4:         "the file's compressed payload is corrupted",
	wetex.ErrNotFound:           "check the entry path against `wetex info`'s output",
}

func logFailure(context string, err error) {
	slog.Error(context, "error", err)
	for sentinel, hint := range suggestions {
		if errors.Is(err, sentinel) {
			slog.Error(context, "suggestion", hint)
			return
		}
	}
}

// exitCodeFor maps a top-level command error to exit codes: 1 for
// input failures, 2 for usage errors.
func exitCodeFor(err error) int {
	var usage usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// usageError marks a CLI argument error as exit code 2, distinct from an
// input/data failure (exit code 1).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func newUsageError(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// levelFromName parses a WETEX_LOG_LEVEL string into a slog.Level, falling
// back to info for an empty or unrecognised value.
func levelFromName(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
