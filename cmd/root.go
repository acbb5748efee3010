// Package cmd implements the deskpad CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/deskpad/internal/config"
	"github.com/theirongolddev/deskpad/internal/logging"
	"github.com/theirongolddev/deskpad/internal/state"
	"github.com/theirongolddev/deskpad/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	dbFileName  = "deskpad.db"
	logFileName = "deskpad.log"
)

var (
	flagDataDir   string
	flagVariant   string
	flagEphemeral bool
	flagQuiet     bool
	flagVerbose   bool
)

// session is what a command invocation shares: config, logger and the
// lazily opened store.
type session struct {
	cfg     config.Config
	log     *zap.Logger
	dataDir string
	layout  store.Layout

	slot   store.Slot
	bridge *store.Bridge
	store  *state.Store
}

var sess *session

var rootCmd = &cobra.Command{
	Use:          "deskpad",
	Short:        "Study planner, expense and habit tracker for the terminal",
	Long:         "Track subjects and goals, expenses and daily habits. Data stays in a local SQLite file.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			// A broken config file should not lock the user out of their data.
			fmt.Fprintf(os.Stderr, "  Warning: %s, using defaults\n", err)
			cfg = config.DefaultConfig()
		}

		variant := cfg.General.Variant
		if flagVariant != "" {
			variant = flagVariant
		}
		layout, err := store.ParseLayout(variant)
		if err != nil {
			return err
		}

		dataDir := cfg.DataDir(flagDataDir)

		opts := logging.Options{Level: cfg.Log.Level, Verbose: flagVerbose}
		if flagQuiet {
			opts.Level = "error"
		}
		if cmd.Name() == "tui" {
			opts.File = filepath.Join(dataDir, logFileName)
		}
		logger, err := logging.New(opts)
		if err != nil {
			return err
		}

		sess = &session{cfg: cfg, log: logger, dataDir: dataDir, layout: layout}
		logger.Debug("starting",
			zap.String("command", cmd.Name()),
			zap.String("layout", string(layout)),
			zap.String("data_dir", dataDir),
			zap.Bool("ephemeral", flagEphemeral))
		return nil
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	err := rootCmd.Execute()
	closeSession()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default $XDG_DATA_HOME/deskpad)")
	rootCmd.PersistentFlags().StringVarP(&flagVariant, "variant", "V", "", "App variant: multi or study (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep data in memory only")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// openSlot opens the durable slot, or a memory slot with --ephemeral.
func openSlot(dataDir string) (store.Slot, error) {
	if flagEphemeral {
		return store.NewMemory(), nil
	}
	slot, err := store.OpenSQLite(filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return slot, nil
}

// openStore is the shared data loading path used by all data commands.
func openStore(ctx context.Context) (*state.Store, error) {
	if sess == nil {
		return nil, errors.New("session not initialised")
	}
	if sess.store != nil {
		return sess.store, nil
	}

	slot, err := openSlot(sess.dataDir)
	if err != nil {
		return nil, err
	}
	sess.slot = slot

	st, bridge := loadLayout(ctx, slot, sess.layout, sess.log)
	sess.bridge = bridge
	sess.store = st
	return st, nil
}

// loadLayout builds the bridge and store for one layout over an open slot.
func loadLayout(ctx context.Context, slot store.Slot, layout store.Layout, log *zap.Logger) (*state.Store, *store.Bridge) {
	bridge := store.NewBridge(slot, layout, log)
	st := state.New(bridge.Load(ctx), bridge, state.WithLogger(log))
	return st, bridge
}

// requireMulti rejects commands that only exist in the multi layout.
func requireMulti(what string) error {
	if sess.layout != store.LayoutMulti {
		return fmt.Errorf("%s are not available in the %s variant", what, sess.layout)
	}
	return nil
}

func closeSession() {
	if sess == nil {
		return
	}
	if sess.slot != nil {
		if err := sess.slot.Close(); err != nil {
			sess.log.Warn("closing storage", zap.Error(err))
		}
	}
	_ = sess.log.Sync()
	sess = nil
}
