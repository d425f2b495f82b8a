package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/daviddao/rpndate/pkg/date"
	"github.com/daviddao/rpndate/pkg/stamp"
)

// stepFlags are the --deet/--npas overrides shared by several commands.
type stepFlags struct {
	deet float64
	npas float64
}

func (s *stepFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&s.deet, "deet", 0, "step length in seconds")
	cmd.Flags().Float64Var(&s.npas, "npas", 0, "number of steps since the origin")
}

// options returns only the overrides the user actually passed.
func (s *stepFlags) options(cmd *cobra.Command) []date.Option {
	var opts []date.Option
	if cmd.Flags().Changed("deet") {
		opts = append(opts, date.WithStepLength(s.deet))
	}
	if cmd.Flags().Changed("npas") {
		opts = append(opts, date.WithStepCount(s.npas))
	}
	return opts
}

func printDetail(w io.Writer, d *date.Date) {
	fmt.Fprintf(w, "valid   %s\n", stamp.FormatPrint(d.Print()))
	fmt.Fprintf(w, "origin  %s\n", stamp.FormatPrint(d.OriginPrint()))
	fmt.Fprintf(w, "deet    %.1f\n", d.StepLength())
	fmt.Fprintf(w, "npas    %.1f\n", d.StepCount())
	fmt.Fprintf(w, "datev   %d\n", d.Valid())
	fmt.Fprintf(w, "time    %s\n", d.Time().Format(time.RFC3339Nano))
}

func (a *app) showCmd() *cobra.Command {
	var steps stepFlags
	var rebase bool
	cmd := &cobra.Command{
		Use:   "show <date>",
		Short: "Decode a date and its step fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args[0], steps.options(cmd)...)
			if err != nil {
				return err
			}
			if rebase {
				d.Rebase()
			}
			return a.emit(d, func(w io.Writer) { printDetail(w, d) })
		},
	}
	steps.register(cmd)
	cmd.Flags().BoolVar(&rebase, "rebase", false, "fold the steps into the origin first")
	return cmd
}

func (a *app) addCmd() *cobra.Command {
	var steps stepFlags
	cmd := &cobra.Command{
		Use:   "add <date> <hours>",
		Short: "Move a date by a signed number of hours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args[0], steps.options(cmd)...)
			if err != nil {
				return err
			}
			h, err := parseHours(args[1])
			if err != nil {
				return err
			}
			moved := d.Plus(h)
			a.log.Debug("moved date", "from", d.String(), "hours", h)
			return a.emit(moved, func(w io.Writer) { fmt.Fprintln(w, moved) })
		},
	}
	steps.register(cmd)
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <date> <date>",
		Short: "Print the first date minus the second, in hours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d1, err := parseDate(args[0])
			if err != nil {
				return err
			}
			d2, err := parseDate(args[1])
			if err != nil {
				return err
			}
			h := d1.Sub(d2)
			result := map[string]any{"hours": h, "compare": d1.Compare(d2)}
			return a.emit(result, func(w io.Writer) { fmt.Fprintf(w, "%g\n", h) })
		},
	}
}

// rangeResult is the structured output of the range command.
type rangeResult struct {
	Range  string       `json:"range" yaml:"range"`
	Length float64      `json:"length_hours" yaml:"length_hours"`
	Step   float64      `json:"step_hours" yaml:"step_hours"`
	Dates  []*date.Date `json:"dates" yaml:"dates"`
}

func (a *app) rangeCmd() *cobra.Command {
	var step float64
	var limit int
	cmd := &cobra.Command{
		Use:   "range <start> <end>",
		Short: "List the dates from start to end at a fixed step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.parseRange(cmd, args[0], args[1], step)
			if err != nil {
				return err
			}
			res := rangeResult{Range: r.String(), Length: r.Length(), Step: r.Step()}
			for d := range r.All() {
				if limit > 0 && len(res.Dates) == limit {
					break
				}
				res.Dates = append(res.Dates, d)
			}
			a.log.Debug("traversal finished", "range", r.String(), "dates", len(res.Dates))
			return a.emit(res, func(w io.Writer) {
				for _, d := range res.Dates {
					fmt.Fprintln(w, d)
				}
			})
		},
	}
	cmd.Flags().Float64Var(&step, "step", 0, "step in hours (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many dates (0 = no limit)")
	return cmd
}

// parseRange builds a range from two date arguments. The step comes from
// --step when given, otherwise from the configuration.
func (a *app) parseRange(cmd *cobra.Command, from, to string, step float64) (*date.Range, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("step") {
		step = a.cfg.Range.StepHours
	}
	return date.NewRange(start, end, step)
}
