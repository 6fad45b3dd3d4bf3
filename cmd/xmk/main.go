// Command xmk is a small, declarative, incremental build tool: it reads
// a build description, resolves a target graph, and re-runs the shell
// commands for any target whose output is missing or stale.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmkbuild/xmk/internal/diagnostic"
	"github.com/xmkbuild/xmk/internal/engine"
	"github.com/xmkbuild/xmk/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run builds the cobra command and executes it against args, returning
// the process exit code: 0 on success, 1 on any fatal diagnostic.
func run(args []string) int {
	var (
		file        string
		preprocess  bool
		verbose     bool
		veryVerbose bool
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:           "xmk",
		Short:         "A small declarative, incremental build tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(file, preprocess, verbose, veryVerbose, quiet)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&file, "file", "f", "default.xmk", "input build file")
	flags.BoolVarP(&preprocess, "preprocess", "E", false, "preprocess only: print the expanded source and exit")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVar(&veryVerbose, "vv", false, "extra-verbose logging (implies -v)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress echoing of commands before execution")

	cmd.SetArgs(normalizeArgs(args))

	if err := cmd.Execute(); err != nil {
		printFatal(err, veryVerbose)
		return 1
	}
	return 0
}

// normalizeArgs rewrites the bare "-vv" token into "--vv": pflag's
// single-dash shorthands are exactly one rune, so the literal "-vv" flag
// is expressed as a long flag and translated here rather than forcing
// every other flag to grow an awkward multi-letter shorthand.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-vv" {
			out = append(out, "--vv")
			continue
		}
		out = append(out, a)
	}
	return out
}

func execute(file string, preprocess, verbose, veryVerbose, quiet bool) error {
	if preprocess {
		src, err := os.ReadFile(file)
		if err != nil {
			return diagnostic.Wrap(err, "reading "+file)
		}
		expanded, err := engine.Preprocess(src)
		if err != nil {
			return err
		}
		fmt.Println(expanded)
		return nil
	}

	log := logging.New(verbose, veryVerbose)

	program, err := engine.Load(file)
	if err != nil {
		return err
	}

	eng := engine.New(program.Store, quiet, log)
	return eng.Build(program.BuildRoot)
}

func printFatal(err error, verbose bool) {
	if de, ok := err.(*diagnostic.Error); ok {
		if verbose {
			fmt.Fprintln(os.Stderr, de.Verbose())
		} else {
			fmt.Fprintln(os.Stderr, de.Error())
		}
		return
	}
	fmt.Fprintf(os.Stderr, "[error] %v\n", err)
}
