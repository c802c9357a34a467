// Package cli implements the slotctl command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliasbuenosdias/voice-changer/internal/paths"
	"github.com/eliasbuenosdias/voice-changer/internal/slots"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// options holds global flag values and the state resolved from them before
// a subcommand runs.
type options struct {
	configDir string
	modelDir  string
	maxSlots  int
	jsonMode  bool
	verbose   bool

	resolvedConfigDir string
	config            types.Config
	logger            *zap.Logger
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// exitCode returns the exit code for an error returned by a command.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitSysError
}

// NewRootCmd creates the top-level "slotctl" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "slotctl",
		Short: "Inspect and edit voice changer model slots",
		Long: "slotctl reads and writes the model slot descriptors of a voice changer\n" +
			"model directory (<model-dir>/<slot>/params.json).",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return o.resolve()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&o.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&o.modelDir, "model-dir", "", "model directory (default: $(CWD)/model_dir)")
	root.PersistentFlags().IntVar(&o.maxSlots, "max-slots", 0, "number of slots (default: config.yaml max_slots or 200)")
	root.PersistentFlags().BoolVar(&o.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(o))
	root.AddCommand(newListCmd(o))
	root.AddCommand(newShowCmd(o))
	root.AddCommand(newSetCmd(o))
	root.AddCommand(newClearCmd(o))
	root.AddCommand(newWatchCmd(o))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "slotctl:", err)
		os.Exit(exitCode(err))
	}
}

// resolve builds the logger and resolves the config dir, config.yaml values
// and the model directory.
func (o *options) resolve() error {
	zcfg := zap.NewProductionConfig()
	if o.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	o.logger = logger

	configDir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	o.resolvedConfigDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	modelDir, err := paths.ResolveModelDir(o.modelDir, v.GetString(cfgKeyModelDir))
	if err != nil {
		return fmt.Errorf("resolve model dir: %w", err)
	}

	maxSlots := o.maxSlots
	if maxSlots == 0 {
		maxSlots = v.GetInt(cfgKeyMaxSlots)
	}

	o.config = types.Config{ModelDir: modelDir, MaxSlots: maxSlots}
	if err := o.config.Validate(); err != nil {
		return userError("invalid configuration: %w", err)
	}

	o.logger.Debug("configuration resolved",
		zap.String("config_dir", configDir),
		zap.String("model_dir", modelDir),
		zap.Int("max_slots", maxSlots))
	return nil
}

// repository returns a slot repository for the resolved configuration.
func (o *options) repository() *slots.Repository {
	return slots.NewRepository(o.config.ModelDir,
		slots.WithMaxSlots(o.config.MaxSlots),
		slots.WithLogger(o.logger))
}

// parseIndex parses a slot index argument and checks it against MaxSlots.
func (o *options) parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, userError("invalid slot index %q", arg)
	}
	if index < 0 || index >= o.config.MaxSlots {
		return 0, userError("slot index %d out of range [0, %d)", index, o.config.MaxSlots)
	}
	return index, nil
}
