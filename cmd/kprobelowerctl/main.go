package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kprobelower/kprobelower/assemble"
	"github.com/kprobelower/kprobelower/pkg/config"
	"github.com/kprobelower/kprobelower/pkg/logflags"
)

const version = "0.1.0"

var (
	logFlag bool
	logstr  string
)

func main() {
	rootCommand := &cobra.Command{
		Use:   "kprobelowerctl",
		Short: "Lowers a logical probe deployment into a physical probe program.",
	}
	rootCommand.PersistentFlags().BoolVar(&logFlag, "log", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVar(&logstr, "log-output", "", "Comma separated list of log layers to enable: dwarf, lower, assemble.")

	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("kprobelowerctl version " + version)
		},
	}

	lowerCommand := &cobra.Command{
		Use:   "lower <deployment.yaml>",
		Short: "Lower a YAML logical deployment into a physical program and print it as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logflags.Setup(logFlag, logstr); err != nil {
				return err
			}
			return runLower(args[0])
		},
	}

	rootCommand.AddCommand(versionCommand, lowerCommand)

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLower(path string) error {
	f, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	dep, err := f.ToLogical()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	prog, err := assemble.Assemble(dep)
	if err != nil {
		return fmt.Errorf("lowering %s: %w", path, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prog)
}
