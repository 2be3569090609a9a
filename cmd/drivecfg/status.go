// cmd/drivecfg/status.go
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/publish"
	"github.com/tamzrod/drivecfg/internal/result"
	"github.com/tamzrod/drivecfg/internal/status"
)

func statusCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Read back the published status blocks from status memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg == nil || o.cfg.Drivecfg.StatusMemory == nil {
				return fmt.Errorf("status needs --config with status_memory")
			}
			mem := *o.cfg.Drivecfg.StatusMemory

			cli, closeClient, err := publish.BuildEndpointClient(mem)
			if err != nil {
				return fmt.Errorf("status memory: %w", err)
			}
			defer closeClient()

			w := cmd.OutOrStdout()
			for _, d := range o.cfg.Drivecfg.Drives {
				if d.StatusSlot == nil {
					continue
				}
				regs, err := cli.ReadRegisters(mem.UnitID, *d.StatusSlot*status.SlotsPerDevice, status.SlotsPerDevice)
				if err != nil {
					return fmt.Errorf("drive %q: %w", d.ID, err)
				}
				s, name, err := status.Decode(regs)
				if err != nil {
					return fmt.Errorf("drive %q: %w", d.ID, err)
				}
				printSnapshot(w, d.ID, name, s)
			}
			return nil
		},
	}
}

func printSnapshot(w io.Writer, id, name string, s status.Snapshot) {
	fmt.Fprintf(w, "%s (%s): %s", id, name, status.HealthString(s.Health))
	if s.Health == status.HealthError || s.Health == status.HealthDisabled {
		fmt.Fprintf(w, ", %s for %ds", result.Code(s.LastErrorCode), s.SecondsInError)
	}
	fmt.Fprintln(w)

	for f := status.Feature(0); f < status.FeatureCount; f++ {
		v := s.Features[f]
		switch {
		case s.Unsupported&f.Bit() != 0:
			fmt.Fprintf(w, "  %-14s not supported\n", f)
		case s.Failed&f.Bit() != 0:
			fmt.Fprintf(w, "  %-14s read failed\n", f)
		case v == status.ValueUnread:
			continue
		default:
			fmt.Fprintf(w, "  %-14s %#04x\n", f, v)
		}
	}
}
