// cmd/drivecfg/features.go
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

func parseGeneration(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, result.Errorf(result.BadParameter, "parse argument", "%q is not a number in 0..255", s)
	}
	return uint8(v), nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "enabled", "true", "1":
		return true, nil
	case "off", "disable", "disabled", "false", "0":
		return false, nil
	}
	return false, result.Errorf(result.BadParameter, "parse argument", "%q is not on or off", s)
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// getSetCmd builds a feature command with get and set children.
func getSetCmd(use, short string, get, set *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}
	get.Use = "get"
	set.Use = "set " + set.Use
	cmd.AddCommand(get, set)
	return cmd
}

func infoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show how the drive was classified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				d := env.Device
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "path:    %s\n", d.Path)
				fmt.Fprintf(w, "vendor:  %s\n", d.Vendor)
				fmt.Fprintf(w, "model:   %s\n", d.Model)
				fmt.Fprintf(w, "class:   %s\n", d.Class)
				fmt.Fprintf(w, "family:  %s\n", d.Family)
				fmt.Fprintf(w, "ssd:     %t\n", d.SolidState)
				fmt.Fprintf(w, "caps:    %#04x\n", uint32(d.Caps))
				return nil
			})
		},
	}
}

func phySpeedCmd(o *options) *cobra.Command {
	var phyID int

	get := &cobra.Command{
		Short: "Show supported, negotiated and programmed link rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				ls, err := feature.GetPhySpeed(env)
				if err != nil {
					return err
				}
				printLinkSpeed(cmd.OutOrStdout(), ls)
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "<generation>",
		Short: "Program the maximum link generation (0 restores the drive maximum)",
		Long: `Program the maximum link generation: 1..3 for SATA, 1..5 for SAS.
0 restores the drive's own maximum. The change takes effect after a power
cycle or link reset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := parseGeneration(args[0])
			if err != nil {
				return err
			}
			sel := modepage.PhySelector{All: true}
			if phyID >= 0 {
				if phyID > 0xFF {
					return result.Errorf(result.BadParameter, "parse argument", "phy %d", phyID)
				}
				sel = modepage.PhySelector{ID: uint8(phyID)}
			}
			return o.withDrive(func(env feature.Env) error {
				return feature.SetPhySpeed(env, gen, sel)
			})
		},
	}
	set.Flags().IntVar(&phyID, "phy", -1, "SAS phy identifier (default all phys)")

	return getSetCmd("phy-speed", "Link speed of SATA and SAS drives", get, set)
}

func printLinkSpeed(w io.Writer, ls feature.LinkSpeed) {
	if len(ls.Phys) == 0 {
		fmt.Fprintf(w, "supported generations: %v\n", ls.SATASupported)
		fmt.Fprintf(w, "negotiated generation: %d\n", ls.SATANegotiated)
		return
	}
	for _, p := range ls.Phys {
		fmt.Fprintf(w, "phy %d: negotiated %s, programmed max %s, hardware max %s\n",
			p.ID,
			modepage.SASRateString(p.Negotiated),
			modepage.SASRateString(p.Programmed),
			modepage.SASRateString(p.Hardware),
		)
	}
}

func spinUpCmd(o *options) *cobra.Command {
	get := &cobra.Command{
		Short: "Show whether low current spin-up is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				on, err := feature.GetLowCurrentSpinUp(env)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "low current spin-up: %s\n", onOff(on))
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "on|off",
		Short: "Enable or disable low current spin-up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return o.withDrive(func(env feature.Env) error {
				return feature.SetLowCurrentSpinUp(env, on)
			})
		},
	}

	return getSetCmd("spinup", "Low current spin-up of SATA drives", get, set)
}

func sscCmd(o *options) *cobra.Command {
	get := &cobra.Command{
		Short: "Show the spread spectrum clocking setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				st, err := feature.GetSSC(env)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ssc: %s\n", st)
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "default|enabled|disabled",
		Short: "Change spread spectrum clocking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := feature.ParseSSCState(args[0])
			if err != nil {
				return err
			}
			return o.withDrive(func(env feature.Env) error {
				return feature.SetSSC(env, st)
			})
		},
	}

	return getSetCmd("ssc", "Spread spectrum clocking of SATA drives", get, set)
}

func jitCmd(o *options) *cobra.Command {
	var req feature.JITRequest

	get := &cobra.Command{
		Short: "Show the JIT seek modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				j, err := feature.GetJIT(env)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "vjit: %s\n", onOff(!j.VJITDisabled))
				fmt.Fprintf(w, "jit mode: %d\n", j.Mode)
				for i, on := range j.Levels {
					fmt.Fprintf(w, "  jit%d: %s\n", i, onOff(on))
				}
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "[mode]",
		Short: "Program the fastest allowed JIT mode (0..3), or --revert",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 1:
				m, err := parseGeneration(args[0])
				if err != nil {
					return err
				}
				req.Mode = m
			case !req.Revert:
				return result.Errorf(result.BadParameter, "set jit", "mode or --revert required")
			}
			return o.withDrive(func(env feature.Env) error {
				return feature.SetJIT(env, req)
			})
		},
	}
	set.Flags().BoolVar(&req.DisableVJIT, "disable-vjit", false, "disable variable JIT")
	set.Flags().BoolVar(&req.Revert, "revert", false, "restore the drive defaults")
	set.Flags().BoolVar(&req.NonVolatile, "nonvolatile", false, "save the change across power cycles")

	return getSetCmd("jit", "Just-in-time seek modes of SAS drives", get, set)
}

func powerBalanceCmd(o *options) *cobra.Command {
	get := &cobra.Command{
		Short: "Show whether power balance is supported and enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDrive(func(env feature.Env) error {
				pb, err := feature.GetPowerBalance(env)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if !pb.Supported {
					fmt.Fprintln(w, "power balance: not supported")
					return nil
				}
				fmt.Fprintf(w, "power balance: %s\n", onOff(pb.Enabled))
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "on|off",
		Short: "Enable or disable power balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return o.withDrive(func(env feature.Env) error {
				return feature.SetPowerBalance(env, on)
			})
		},
	}

	return getSetCmd("power-balance", "Power balance of SATA and SAS drives", get, set)
}
