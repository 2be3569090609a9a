// cmd/drivecfg/trace.go
package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/trace"
)

func traceCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect command trace files",
	}

	var withData bool
	dump := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every recorded device command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := trace.ReadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range events {
				fmt.Fprintf(w, "%s %s #%d %s %s", e.Timestamp.Format(time.RFC3339Nano), e.SessionID, e.Seq, e.Device, e.Kind)
				if e.Kind == trace.KindModeSense || e.Kind == trace.KindModeSelect {
					fmt.Fprintf(w, " %s page=%02Xh/%02Xh len=%d", e.Variant, e.Page, e.Subpage, e.Len)
				}
				fmt.Fprintf(w, " %s", e.Duration)
				if e.Err != "" {
					fmt.Fprintf(w, " err=%q", e.Err)
				}
				fmt.Fprintln(w)
				if withData {
					if len(e.Out) > 0 {
						fmt.Fprintf(w, "  out:\n%s", hex.Dump(e.Out))
					}
					if len(e.In) > 0 {
						fmt.Fprintf(w, "  in:\n%s", hex.Dump(e.In))
					}
				}
			}
			return nil
		},
	}
	dump.Flags().BoolVar(&withData, "data", false, "hex dump command data")

	cmd.AddCommand(dump)
	return cmd
}
