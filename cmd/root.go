// Package cmd provides the process entry point for fman.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set during build via ldflags.
	Version = "0.1.0"
	// BuildTime is set during build via ldflags.
	BuildTime = "unknown"
	// Commit is set during build via ldflags.
	Commit = "unknown"

	profileFlag string
	debugFlag   bool

	rootCmd = &cobra.Command{
		Use:     "fman",
		Short:   "A keyboard-driven terminal file manager",
		Version: "",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(args)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "default", "configuration profile to use")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug logging")
}

// SetVersionInfo updates the version string after build-time variables
// are set.
func SetVersionInfo() {
	rootCmd.Version = Version
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fman:", err)
		os.Exit(1)
	}
}

func runREPL(args []string) error {
	var restore func()
	stdinMode := StdinMode()
	if stdinMode {
		cleanup, err := enterStdinMode(args)
		if err != nil {
			return err
		}
		restore = cleanup
	}

	repl, err := NewREPL(profileFlag)
	if err != nil {
		if restore != nil {
			restore()
		}
		return err
	}
	if debugFlag {
		repl.ctx.Config.Logging.Level = "debug"
	}

	if stdinMode {
		repl.ctx.StdinTempDir = true
		tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err == nil {
			repl.SetInput(tty)
			defer tty.Close()
		}
	}

	err = repl.Run()
	if restore != nil {
		restore()
	}
	return err
}
