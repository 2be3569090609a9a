// cmd/drivecfg/watch.go
package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/monitor"
	"github.com/tamzrod/drivecfg/internal/publish"
	pmodbus "github.com/tamzrod/drivecfg/internal/publish/modbus"
	"github.com/tamzrod/drivecfg/internal/result"
	"github.com/tamzrod/drivecfg/internal/status"
)

func watchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll configured drives and publish their state to status memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg == nil {
				return fmt.Errorf("watch needs --config")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return o.watch(ctx)
		},
	}
}

func (o *options) watch(ctx context.Context) error {
	dc := o.cfg.Drivecfg

	// ---- status memory client (shared, serialized) ----
	var cli *pmodbus.EndpointClient
	if dc.StatusMemory != nil {
		c, closeClient, err := publish.BuildEndpointClient(*dc.StatusMemory)
		if err != nil {
			return fmt.Errorf("status memory: %w", err)
		}
		defer closeClient()
		cli = c
	}

	// ---- publish plans: all of them before any drive is touched ----
	plans := make([]publish.Plan, 0, len(dc.Drives))
	for _, d := range dc.Drives {
		plan, err := publish.BuildPlan(d, dc.StatusMemory)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
	}

	open := o.open
	if open == nil {
		open = o.openDrive
	}

	var (
		wg      sync.WaitGroup
		closers []func() error
	)

	for i, d := range dc.Drives {
		log := o.log.WithField("drive", d.ID)

		var sw publish.StatusWriter
		if cli != nil {
			if w, ok := publish.NewDeviceStatusWriter(plans[i], cli); ok {
				sw = w
			}
		}

		if len(d.Features) == 0 {
			log.Debug("no features configured, not monitored")
			continue
		}

		// ---- monitor ----
		m, closeDrive, err := monitor.Build(d, open)
		if err != nil {
			log.WithError(err).Error("monitor build failed")
			if sw != nil {
				tr := status.NewTracker()
				tr.Disable(errorCode(err))
				if err := sw.WriteStatus(tr.Snapshot()); err != nil {
					log.WithError(err).Warn("status write failed")
				}
			}
			continue
		}
		closers = append(closers, closeDrive)

		out := make(chan monitor.Result)

		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Run(ctx, out)
		}()
		go func() {
			defer wg.Done()
			secTicker := time.NewTicker(time.Second)
			defer secTicker.Stop()
			supervise(ctx, log, out, sw, secTicker.C)
		}()
	}

	<-ctx.Done()

	// drives are closed only once nothing uses them
	wg.Wait()
	for _, closeDrive := range closers {
		if err := closeDrive(); err != nil {
			o.log.WithError(err).Warn("drive close failed")
		}
	}
	return nil
}

// supervise owns one drive's status: it folds monitor results into the
// snapshot, ticks seconds in error at 1 Hz and delivers changes. sw may be
// nil, in which case results are only logged.
func supervise(ctx context.Context, log logrus.FieldLogger, in <-chan monitor.Result, sw publish.StatusWriter, tick <-chan time.Time) {
	tr := status.NewTracker()

	deliver := func(what string) {
		if sw == nil {
			return
		}
		if err := sw.WriteStatus(tr.Snapshot()); err != nil {
			log.WithError(err).Warnf("status write failed (%s)", what)
		}
	}

	// full block write on start
	deliver("start")

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-in:
			r := res.Reading
			r.ErrorCode = errorCode(res.Err)
			if res.Err != nil {
				log.WithError(res.Err).
					WithField("code", result.CodeOf(res.Err)).
					Warn("feature read failed")
			}
			if tr.Observe(r) {
				deliver("reading")
			}

		case <-tick:
			if tr.Tick() {
				deliver("seconds tick")
			}
		}
	}
}
