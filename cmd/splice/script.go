package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/script"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "script <file.yaml>",
		Short: "Replay an edit script offline and print the resulting track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := ctx.ensure()
			if err != nil {
				return err
			}
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			report, err := script.NewRunner(log).Run(cmd.Context(), s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSteps(out, report)
			fmt.Fprintln(out)
			printTrack(out, report.Snapshot)

			if strict && report.Failed() > 0 {
				return fmt.Errorf("%d of %d steps failed", report.Failed(), len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any step fails")
	return cmd
}

func printSteps(out io.Writer, report *script.Report) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		result := res.Detail
		if res.Err != nil {
			result = "error: " + res.Err.Error()
		}
		rows = append(rows, []string{strconv.Itoa(res.Index), res.Action, result})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"#", "Step", "Result"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft}))
}

func printTrack(out io.Writer, snap timeline.Snapshot) {
	if len(snap.Clips) == 0 {
		fmt.Fprintln(out, "Track is empty")
		return
	}

	rows := make([][]string, 0, len(snap.Clips))
	for _, c := range snap.Clips {
		rows = append(rows, []string{
			strconv.FormatUint(c.ID, 10),
			c.Name,
			string(c.Type),
			timeline.FormatTrimInput(c.StartTime),
			timeline.FormatTrimInput(c.EndTime),
			timeline.FormatTrimInput(c.TrimStart) + "-" + timeline.FormatTrimInput(c.TrimEnd),
			strconv.FormatFloat(c.PixelStart, 'f', 0, 64),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Clip", "Name", "Type", "Start", "End", "Window", "Px"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight}))
	fmt.Fprintf(out, "total %s  play-head %s  %d clips\n",
		timeline.FormatTrimInput(snap.TotalDuration),
		timeline.FormatTrimInput(snap.CurrentTime),
		len(snap.Clips))
}
