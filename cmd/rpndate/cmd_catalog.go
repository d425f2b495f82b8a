package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daviddao/rpndate/pkg/coverage"
	"github.com/daviddao/rpndate/pkg/stamp"
	"github.com/daviddao/rpndate/pkg/store"
)

func printRecord(w io.Writer, r *store.Record) {
	d := r.Date()
	fmt.Fprintf(w, "%s  %-4s  %s  origin %s deet=%.1f npas=%.1f\n",
		r.ID, r.Label, stamp.FormatPrint(d.Print()),
		stamp.FormatPrint(d.OriginPrint()), r.Deet, r.Npas)
}

func (a *app) saveCmd() *cobra.Command {
	var steps stepFlags
	cmd := &cobra.Command{
		Use:   "save <label> <date>",
		Short: "Catalogue a record date under a label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(args[1], steps.options(cmd)...)
			if err != nil {
				return err
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			rec, err := cat.SaveRecord(args[0], d)
			if err != nil {
				return err
			}
			a.log.Info("saved record", "id", rec.ID, "label", rec.Label, "valid", d.String())
			return a.emit(rec, func(w io.Writer) { printRecord(w, rec) })
		},
	}
	steps.register(cmd)
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var label, from, to string
	var step float64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued records by valid time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (from == "") != (to == "") {
				return fmt.Errorf("--from and --to must be given together")
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}

			var recs []store.Record
			switch {
			case from != "":
				r, err := a.parseRange(cmd, from, to, step)
				if err != nil {
					return err
				}
				if recs, err = cat.ListValidBetween(r); err != nil {
					return err
				}
				if label != "" {
					recs = filterLabel(recs, label)
				}
			case label != "":
				if recs, err = cat.ListByLabel(label); err != nil {
					return err
				}
			default:
				if recs, err = cat.ListRecords(); err != nil {
					return err
				}
			}

			return a.emit(map[string]any{"records": recs, "count": len(recs)}, func(w io.Writer) {
				if len(recs) == 0 {
					fmt.Fprintln(w, "no records")
					return
				}
				for i := range recs {
					printRecord(w, &recs[i])
				}
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "only records with this label")
	cmd.Flags().StringVar(&from, "from", "", "only records valid at or after this date")
	cmd.Flags().StringVar(&to, "to", "", "only records valid at or before this date")
	cmd.Flags().Float64Var(&step, "step", 0, "range step in hours (only its sign matters here)")
	return cmd
}

func filterLabel(recs []store.Record, label string) []store.Record {
	filtered := recs[:0]
	for _, r := range recs {
		if r.Label == label {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a record from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			if err := cat.DeleteRecord(args[0]); err != nil {
				return err
			}
			a.log.Info("deleted record", "id", args[0])
			return a.emit(map[string]any{"deleted": args[0]}, func(w io.Writer) {
				fmt.Fprintf(w, "deleted %s\n", args[0])
			})
		},
	}
}

func (a *app) coverageCmd() *cobra.Command {
	var step float64
	cmd := &cobra.Command{
		Use:   "coverage <label> <start> <end>",
		Short: "Check that a label has a record at every step of a range",
		Long: `coverage walks the range from start to end and reports which steps
have a catalogued record under label, matching by valid time.
Exit status is 2 when any step is missing.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.parseRange(cmd, args[1], args[2], step)
			if err != nil {
				return err
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			recs, err := cat.ListByLabel(args[0])
			if err != nil {
				return err
			}
			rep := coverage.Check(r, store.Dates(recs))
			a.log.Debug("coverage checked", "label", args[0], "expected", rep.Expected, "missing", len(rep.Missing))

			err = a.emit(rep, func(w io.Writer) {
				if rep.Complete {
					fmt.Fprintf(w, "complete: %d/%d steps\n", len(rep.Present), rep.Expected)
				} else {
					fmt.Fprintf(w, "incomplete: %d of %d steps missing\n", len(rep.Missing), rep.Expected)
					for _, d := range rep.Missing {
						fmt.Fprintf(w, "  missing %s\n", stamp.FormatPrint(d.Print()))
					}
				}
				for _, d := range rep.Offgrid {
					fmt.Fprintf(w, "  offgrid %s\n", stamp.FormatPrint(d.Print()))
				}
			})
			if err != nil {
				return err
			}
			if !rep.Complete {
				return errIncomplete
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&step, "step", 0, "step in hours (default from config)")
	return cmd
}
