// Command rpndate inspects and catalogues RPN standard file dates: origin
// stamps with a time-stepping scheme, ranges of them, and the coverage of a
// forecast's output hours.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code:
//
//	0  success
//	1  error
//	2  coverage incomplete
func run(args []string, out, errOut io.Writer) int {
	a := newApp(out, errOut)
	defer a.Close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errIncomplete) {
			return 2
		}
		fmt.Fprintf(errOut, "rpndate: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rpndate",
		Short: "RPN standard file dates: stamps, steps and ranges",
		Long: `rpndate works with the time fields of RPN standard file records.

A record date is an origin stamp (dateo) plus a step length in seconds
(deet) and a step count (npas); its valid time is dateo + deet*npas.

Dates are written YYYYMMDD/HHMMSShh (e.g. 20030423/11453500), a bare
YYYYMMDD, or an RFC 3339 time. Pass negative hours after "--".

Environment:
  RPNDATE_CONFIG    TOML configuration file
  RPNDATE_DB        SQLite catalogue path (default: .rpndate/catalog.db)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default: ./rpndate.toml)")
	pf.StringVar(&a.dbPath, "db", "", "catalogue database path")
	pf.StringVar(&a.format, "format", "", "output format: text, json or yaml")
	pf.BoolVar(&a.jsonOut, "json", false, "JSON output (same as --format json)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		a.showCmd(),
		a.addCmd(),
		a.diffCmd(),
		a.rangeCmd(),
		a.saveCmd(),
		a.listCmd(),
		a.deleteCmd(),
		a.coverageCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "rpndate", version)
		},
	}
}
