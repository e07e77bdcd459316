package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	Sb "github.com/austencloud/tka-scribe-sub004/batch"
	Sf "github.com/austencloud/tka-scribe-sub004/config"
	So "github.com/austencloud/tka-scribe-sub004/obvy"
	Sp "github.com/austencloud/tka-scribe-sub004/plugin"
	Sw "github.com/austencloud/tka-scribe-sub004/web"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "scribe",
		Short: "Classifies the loop symmetry of circular choreography sequences",
		Long: `Scribe finds which transformation carries each beat of a circular
sequence onto its partner: rotations, mirrors, flips, track swaps,
motion inversions and their compounds.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { otelShutdown() },
	}
	classifyCmd = &cobra.Command{
		Use:   "classify",
		Short: "Classify sequences, reporting (dry-run) or storing (apply) the results",
		RunE:  runClassify,
	}
	importCmd = &cobra.Command{
		Use:   "import [dir]",
		Short: "Load a directory of sequence documents into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runImport,
	}
	showCmd = &cobra.Command{
		Use:   "show [sequence-id]",
		Short: "Print a stored classification",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve on demand classification, stored results and metrics over HTTP",
		RunE:  runServe,
	}

	configPath string
	logJSON    bool
	mode       string
	target     string
	inputDir   string

	cfg          *Sf.Config
	otelShutdown = func() {}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON instead of text")

	classifyCmd.Flags().StringVar(&mode, "mode", Sb.ModeDryRun, "dry-run reports only, apply stores results")
	classifyCmd.Flags().StringVar(&target, "target", "", "Classify a single sequence ID")
	classifyCmd.Flags().StringVar(&inputDir, "input", "", "Read sequence documents from this directory instead of the store")

	rootCmd.AddCommand(classifyCmd, importCmd, showCmd, serveCmd)
}

// setup loads the config, then installs logging and tracing from it
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = Sf.Load(configPath)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	shutdown, err := So.InitOTel(cfg.OTel)
	if err != nil {
		return err
	}
	otelShutdown = shutdown
	return nil
}

func openStore() (*Sp.BadgerStore, error) {
	bc := Sp.DefaultBadgerConfig(cfg.StorePath)
	bc.BatchSize = cfg.BatchSize
	return Sp.NewBadgerStore(bc)
}

// closeInto closes c and reports its error through err,
// unless an earlier error is already being returned
func closeInto(c io.Closer, err *error) {
	cerr := c.Close()
	if cerr == nil {
		return
	}
	slog.Error("Close failed", slog.Any("error", cerr))
	if *err == nil {
		*err = fmt.Errorf("close: %w", cerr)
	}
}

func runClassify(cmd *cobra.Command, args []string) (err error) {
	var store *Sp.BadgerStore
	storeOnce := func() (*Sp.BadgerStore, error) {
		if store != nil {
			return store, nil
		}
		s, err := openStore()
		if err != nil {
			return nil, err
		}
		store = s
		return store, nil
	}
	defer func() {
		if store != nil {
			closeInto(store, &err)
		}
	}()

	var src Sp.SequenceSource
	if inputDir != "" {
		src = Sp.NewFileSource(inputDir)
	} else {
		s, err := storeOnce()
		if err != nil {
			return err
		}
		src = s
	}

	var out Sp.ResultOutput
	if mode == Sb.ModeApply {
		if cfg.Output == "badger" {
			s, err := storeOnce()
			if err != nil {
				return err
			}
			out = s
		} else {
			o, lookupErr := Sp.OutputLookup(cfg.Output, Sp.OutputOptions{Path: cfg.StorePath, BatchSize: cfg.BatchSize})
			if lookupErr != nil {
				return lookupErr
			}
			defer closeInto(o, &err)
			out = o
		}
	}

	runner := &Sb.Runner{
		Source:  src,
		Output:  out,
		Workers: cfg.Workers,
		Mode:    mode,
		Target:  target,
		Stats:   So.NewStatsInternal(),
	}
	rep, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	return rep.Print(cmd.OutOrStdout())
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	dir := cfg.InputDir
	if len(args) == 1 {
		dir = args[0]
	}

	seqs, err := Sp.NewFileSource(dir).Sequences(cmd.Context())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeInto(store, &err)

	if err := store.PutSequences(seqs); err != nil {
		return fmt.Errorf("import %s: %w", dir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sequences from %s\n", len(seqs), dir)
	return nil
}

func runShow(cmd *cobra.Command, args []string) (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeInto(store, &err)

	res, err := store.Result(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeInto(store, &err)

	srv := &Sw.Server{
		Results: store,
		Stats:   So.NewStatsInternal(),
	}
	return srv.ListenAndServe(cmd.Context(), cfg.Addr)
}
