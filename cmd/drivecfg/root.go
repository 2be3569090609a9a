// cmd/drivecfg/root.go
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/drivecfg/internal/config"
	"github.com/tamzrod/drivecfg/internal/feature"
	"github.com/tamzrod/drivecfg/internal/identity"
	"github.com/tamzrod/drivecfg/internal/monitor"
	"github.com/tamzrod/drivecfg/internal/trace"
)

// options are the persistent flags shared by every sub-command.
type options struct {
	configPath string
	devicePath string
	tracePath  string
	verbosity  int

	cfg *config.Config
	log *logrus.Logger
	rec *trace.FileRecorder

	// open replaces openDrive when set.
	open monitor.Opener
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "drivecfg",
		Short: "Configure vendor features of Seagate drives",
		Long: `Read and change vendor specific drive settings: phy link speed,
low current spin-up, spread spectrum clocking, JIT seek modes and power balance.
Settings can also be applied from a YAML file, and drive state can be
published to Modbus holding registers with watch.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return o.teardown()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	f.StringVarP(&o.devicePath, "device", "d", "", "device node, e.g. /dev/sg0")
	f.StringVar(&o.tracePath, "trace", "", "append a CBOR trace of every device command to this file")
	f.IntVarP(&o.verbosity, "verbosity", "v", int(feature.VerbosityNormal), "0 quiet .. 4 debug")

	cmd.AddCommand(
		infoCmd(o),
		phySpeedCmd(o),
		spinUpCmd(o),
		sscCmd(o),
		jitCmd(o),
		powerBalanceCmd(o),
		applyCmd(o),
		watchCmd(o),
		statusCmd(o),
		traceCmd(o),
	)
	return cmd
}

// setup loads the config file when given and lets explicit flags override it.
func (o *options) setup(cmd *cobra.Command) error {
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		config.Normalize(cfg)
		o.cfg = cfg

		flags := cmd.Flags()
		if !flags.Changed("verbosity") {
			o.verbosity = cfg.Drivecfg.Verbosity
		}
		if !flags.Changed("trace") {
			o.tracePath = cfg.Drivecfg.Trace.Path
		}
	}

	o.log = newLogger(o.verbosity)

	if o.tracePath != "" {
		rec, err := trace.NewFileRecorder(o.tracePath)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		o.rec = rec
	}
	return nil
}

func (o *options) teardown() error {
	if o.rec == nil {
		return nil
	}
	return o.rec.Close()
}

// newLogger maps verbosity onto logrus levels.
func newLogger(verbosity int) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case verbosity <= int(feature.VerbosityQuiet):
		l.SetLevel(logrus.ErrorLevel)
	case verbosity == int(feature.VerbosityMinimal):
		l.SetLevel(logrus.WarnLevel)
	case verbosity == int(feature.VerbosityNormal):
		l.SetLevel(logrus.InfoLevel)
	case verbosity == int(feature.VerbosityVerbose):
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.TraceLevel)
	}
	return l
}

// openDrive classifies path and opens it, wrapping the transport with the
// trace recorder when tracing is on.
func (o *options) openDrive(path string) (feature.Env, func() error, error) {
	info, dev, err := identity.Open(path)
	if err != nil {
		return feature.Env{}, nil, err
	}

	env := feature.Env{
		Transport: dev,
		Device:    info,
		Verbosity: feature.Verbosity(o.verbosity),
		Log:       o.log,
	}
	if o.rec != nil {
		t := trace.Wrap(dev, o.rec, path)
		env.Transport = t
		env.Log = o.log.WithField("session", t.SessionID())
	}

	o.log.WithFields(logrus.Fields{
		"device": path,
		"class":  info.Class,
		"family": info.Family,
		"ssd":    info.SolidState,
	}).Debug("drive opened")

	return env, dev.Close, nil
}

// withDrive runs fn against the --device drive.
func (o *options) withDrive(fn func(env feature.Env) error) error {
	if o.devicePath == "" {
		return fmt.Errorf("--device is required")
	}
	env, closeDrive, err := o.openDrive(o.devicePath)
	if err != nil {
		return err
	}
	defer closeDrive()
	return fn(env)
}
