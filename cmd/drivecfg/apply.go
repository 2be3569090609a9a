// cmd/drivecfg/apply.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/apply"
)

func applyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Write the apply blocks of the configuration file to their drives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg == nil {
				return fmt.Errorf("apply needs --config")
			}

			var errs []error
			for _, d := range o.cfg.Drivecfg.Drives {
				if d.Apply == nil {
					continue
				}
				log := o.log.WithField("drive", d.ID)

				env, closeDrive, err := o.openDrive(d.Path)
				if err != nil {
					log.WithError(err).Error("open failed")
					errs = append(errs, fmt.Errorf("drive %q: %w", d.ID, err))
					continue
				}
				err = apply.Drive(env, *d.Apply)
				_ = closeDrive()

				if err != nil {
					log.WithError(err).Error("apply failed")
					errs = append(errs, fmt.Errorf("drive %q: %w", d.ID, err))
					continue
				}
				log.Info("applied")
			}
			return errors.Join(errs...)
		},
	}
}
