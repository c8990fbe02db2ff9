package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x5844/motif/config"
	"github.com/0x5844/motif/corpus"
	"github.com/0x5844/motif/index"
	"github.com/0x5844/motif/logging"
	"github.com/0x5844/motif/metrics"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgPath string
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "motif",
		Short: "Index chess positions by tactical motif and query them",
		Long: `motif builds an in-memory bitmap index over a corpus of chess positions
(Lichess puzzle CSV or FEN lines, optionally zstd compressed) and answers
conjunctive queries over positions and the pieces in them.

Available commands:
  build     - Index the corpus and report domain sizes and feature counts
  query     - Run a built-in pattern by name or code
  patterns  - List the built-in patterns
  features  - List the features and relations a query can use`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.cfgPath, "config", "c", "", "YAML configuration file")
	f.String("corpus", "", "corpus file (.csv or .fen, optionally .zst)")
	f.String("format", "", "corpus format: puzzle-csv or fen")
	f.StringSlice("track-types", nil, "piece types to index: knight, bishop, rook, queen")
	f.String("track-colors", "", "pieces to index: enemy (side not to move) or both")
	f.String("log-level", "", "log level: debug, info, warn or error")
	f.String("log-format", "", "log format: console or json")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newBuildCmd(a),
		newQueryCmd(a),
		newPatternsCmd(a),
		newFeaturesCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"corpus":           &cfg.Corpus.Path,
		"format":           &cfg.Corpus.Format,
		"track-colors":     &cfg.Index.TrackedColors,
		"log-level":        &cfg.Logging.Level,
		"log-format":       &cfg.Logging.Format,
		"metrics-textfile": &cfg.Metrics.Textfile,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("track-types") {
		cfg.Index.TrackedTypes, _ = flags.GetStringSlice("track-types")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log.Named(cmd.Name())
	if cfg.Metrics.Textfile != "" {
		a.metrics = metrics.New()
	}
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	defer logging.Sync(a.log)
	if a.metrics == nil {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		return err
	}
	a.log.Debug("metrics written", zap.String("path", a.cfg.Metrics.Textfile))
	return nil
}

// openIndex opens the configured corpus and indexes it. The caller closes
// the returned file.
func (a *app) openIndex() (*index.Index, *corpus.File, error) {
	if a.cfg.Corpus.Path == "" {
		return nil, nil, errors.New("no corpus given: set --corpus, corpus.path or MOTIF_CORPUS_PATH")
	}
	src, err := corpus.Open(a.cfg.Corpus.Path, a.cfg.CorpusFormat())
	if err != nil {
		return nil, nil, err
	}
	a.log.Info("corpus opened",
		zap.String("path", src.Path()),
		zap.Stringer("format", src.Format()),
		zap.Int("records", src.Len()))

	opts, err := a.cfg.IndexOptions()
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}
	opts = append(opts, index.WithLogger(a.log))
	if a.metrics != nil {
		opts = append(opts, index.WithObserver(a.metrics))
	}

	idx, err := index.Build(src, opts...)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}
	return idx, src, nil
}
