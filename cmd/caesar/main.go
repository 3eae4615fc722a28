// Package main provides the CLI entrypoint for caesar.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/caesar/internal/analysis"
	"github.com/verte-zerg/caesar/internal/cipher"
	"github.com/verte-zerg/caesar/internal/config"
	"github.com/verte-zerg/caesar/internal/logging"
	"github.com/verte-zerg/caesar/internal/model"
	"github.com/verte-zerg/caesar/internal/report"
	"github.com/verte-zerg/caesar/internal/sample"
	"github.com/verte-zerg/caesar/internal/store"
	"github.com/verte-zerg/caesar/internal/textio"
	"github.com/verte-zerg/caesar/internal/tui"
)

const (
	defaultPreview      = report.DefaultPreviewWidth
	defaultSampleWords  = 8
	defaultHistoryLimit = 20
)

var (
	cipherKey    int
	cipherText   string
	cipherFile   string
	cipherOutput string
	cipherCopy   bool

	bruteText    string
	bruteFile    string
	bruteAll     bool
	brutePreview int

	sampleWords    int
	sampleShowKey  bool
	sampleWordlist string

	historyLimit int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "caesar",
		Short:         "Caesar cipher toolkit with ranked brute-force",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runMenuCmd,
	}

	rootCmd.AddCommand(newCipherCmd(model.ModeEncrypt, "Encrypt text with a shift key"))
	rootCmd.AddCommand(newCipherCmd(model.ModeDecrypt, "Decrypt text with a shift key"))
	rootCmd.AddCommand(newBruteCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	opts, closeStore := tuiOptions(cfg, logger)
	defer closeStore()

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCipherCmd(mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   mode,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCipherCmd(cmd, mode)
		},
	}
	cmd.Flags().IntVarP(&cipherKey, "key", "k", 0, "shift key (any integer)")
	cmd.Flags().StringVarP(&cipherText, "text", "t", "", "input text")
	cmd.Flags().StringVarP(&cipherFile, "file", "f", "", "read input from file")
	cmd.Flags().StringVarP(&cipherOutput, "output", "o", "", "write result to file instead of stdout")
	cmd.Flags().BoolVar(&cipherCopy, "copy", false, "copy result to clipboard")
	return cmd
}

func runCipherCmd(cmd *cobra.Command, mode string) error {
	cfg, keySet, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !keySet {
		return fmt.Errorf("--key is required (or set [cipher] key in the config)")
	}
	logger := newLogger(cfg)

	text, err := readText(cmd, cipherText, cipherFile)
	if err != nil {
		return err
	}

	var result string
	if mode == model.ModeEncrypt {
		result = cipher.Encrypt(text, cfg.Key)
	} else {
		result = cipher.Decrypt(text, cfg.Key)
	}

	if cmd.Flags().Changed("output") {
		path, err := textio.Save(cipherOutput, cfg.OutputFile, result)
		if err != nil {
			return err
		}
		logger.Info("saved result", "path", path)
	} else if _, err := fmt.Fprintln(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cipherCopy {
		if err := textio.Copy(result); err != nil {
			logger.Warn("copy failed", "err", err)
		}
	}

	recordRun(cmd.Context(), cfg, logger, model.Run{
		Mode:       mode,
		Key:        cfg.Key,
		InputChars: utf8.RuneCountInString(text),
	})
	return nil
}

func newBruteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brute",
		Short: "Try every key and rank the candidates",
		Args:  cobra.NoArgs,
		RunE:  runBruteCmd,
	}
	cmd.Flags().StringVarP(&bruteText, "text", "t", "", "ciphertext")
	cmd.Flags().StringVarP(&bruteFile, "file", "f", "", "read ciphertext from file")
	cmd.Flags().BoolVar(&bruteAll, "all", false, "print every candidate as 'Key N: text'")
	cmd.Flags().IntVar(&brutePreview, "preview", defaultPreview, "preview width for the ranked list")
	return cmd
}

func runBruteCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	interactive := !bruteAll && cmd.OutOrStdout() == os.Stdout && textio.StdoutIsTerminal()
	var text string
	haveInput := !interactive || inputGiven(cmd, bruteFile)
	if haveInput {
		if text, err = readText(cmd, bruteText, bruteFile); err != nil {
			return err
		}
	}

	if interactive {
		opts, closeStore := tuiOptions(cfg, logger)
		defer closeStore()
		programOpts := []tea.ProgramOption{tea.WithAltScreen()}
		if !textio.StdinIsTerminal() {
			programOpts = append(programOpts, tea.WithInputTTY())
		}
		var m *tui.Model
		if haveInput {
			m = tui.NewBruteModel(opts, text)
		} else {
			m = tui.NewBrutePromptModel(opts)
		}
		program := tea.NewProgram(m, programOpts...)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	ranked, err := analysis.BruteForceContext(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("brute-force interrupted: %w", err)
	}
	out := cmd.OutOrStdout()
	if bruteAll {
		if _, err := fmt.Fprintln(out, ranked.Export()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := report.RenderRanked(out, ranked, cfg.PreviewWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if best, ok := ranked.Best(); ok {
		recordRun(cmd.Context(), cfg, logger, model.Run{
			Mode:       model.ModeBrute,
			InputChars: utf8.RuneCountInString(text),
			BestKey:    best.Key,
			BestScore:  best.Score,
		})
	}
	return nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print an encrypted practice sentence",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().IntVar(&sampleWords, "words", defaultSampleWords, "words per sentence")
	cmd.Flags().BoolVar(&sampleShowKey, "show-key", false, "also print the key and plaintext")
	cmd.Flags().StringVar(&sampleWordlist, "wordlist", "", "word list file (one word per line)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	if sampleWords <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	gen := sample.New()
	if sampleWordlist != "" {
		words, err := sample.LoadWords(sampleWordlist)
		if err != nil {
			return err
		}
		gen.UseWords(words)
	}
	plaintext, ciphertext, key := gen.Challenge(sampleWords)
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, ciphertext); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if sampleShowKey {
		if _, err := fmt.Fprintf(out, "key: %d\nplaintext: %s\n", key, plaintext); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of runs to show (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn("failed to close db", "err", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := report.RenderHistory(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadConfig merges the config file into the flag values. Flags set on the
// command line win. keySet reports whether a key came from either source.
func loadConfig(cmd *cobra.Command) (model.Config, bool, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, false, fmt.Errorf("failed to load config: %w", err)
	}

	key := cipherKey
	preview := brutePreview
	applyIntConfig(cmd, "key", &key, fileCfg.Cipher.Key)
	applyIntConfig(cmd, "preview", &preview, fileCfg.Brute.Preview)

	cfg := model.Config{
		Key:          key,
		PreviewWidth: preview,
		OutputFile:   textio.DefaultOutputFile,
		ExportFile:   textio.DefaultExportFile,
		History:      true,
		LogLevel:     logging.DefaultLevel,
	}
	applyStringConfig(&cfg.OutputFile, fileCfg.Output.File)
	applyStringConfig(&cfg.ExportFile, fileCfg.Output.ExportFile)
	applyStringConfig(&cfg.LogLevel, fileCfg.Log.Level)
	applyBoolConfig(&cfg.History, fileCfg.History.Enabled)

	if err := validateConfig(cfg); err != nil {
		return model.Config{}, false, err
	}
	keySet := cmd.Flags().Changed("key") || fileCfg.Cipher.Key != nil
	return cfg, keySet, nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringConfig(target, value *string) {
	if value == nil {
		return
	}
	*target = *value
}

func applyBoolConfig(target, value *bool) {
	if value == nil {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if cfg.PreviewWidth <= 3 {
		return fmt.Errorf("--preview must be > 3")
	}
	if strings.TrimSpace(cfg.OutputFile) == "" {
		return fmt.Errorf("[output] file must not be empty")
	}
	if strings.TrimSpace(cfg.ExportFile) == "" {
		return fmt.Errorf("[output] export-file must not be empty")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("[log] level: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# caesar configuration
# Uncomment a value to enable it. CLI flags override config values.

[cipher]
# key = 3                 # Default key for encrypt/decrypt

[brute]
# preview = %d            # Preview width in the ranked list

[output]
# file = %q       # Default file for saved results
# export-file = %q  # Default file for exported candidates

[history]
# enabled = true          # Record run metadata (never the text)

[log]
# level = %q            # debug, info, warn or error
`,
		defaultPreview,
		textio.DefaultOutputFile,
		textio.DefaultExportFile,
		logging.DefaultLevel,
	)
}

func inputGiven(cmd *cobra.Command, file string) bool {
	return cmd.Flags().Changed("text") || file != "" || !textio.StdinIsTerminal()
}

// readText resolves the input source: --text, then --file, then piped stdin.
func readText(cmd *cobra.Command, text, file string) (string, error) {
	if cmd.Flags().Changed("text") {
		return text, nil
	}
	if file != "" {
		return textio.ReadInput(nil, file)
	}
	if textio.StdinIsTerminal() {
		return "", fmt.Errorf("no input: use --text, --file or pipe text on stdin")
	}
	return textio.ReadInput(cmd.InOrStdin(), "")
}

func newLogger(cfg model.Config) *log.Logger {
	logger := logging.New(logging.Options{Level: cfg.LogLevel})
	log.SetDefault(logger)
	return logger
}

func tuiOptions(cfg model.Config, logger *log.Logger) (tui.Options, func()) {
	opts := tui.Options{Config: cfg, Logger: logger}
	if !cfg.History {
		return opts, func() {}
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("history disabled", "err", err)
		return opts, func() {}
	}
	opts.Recorder = st
	return opts, func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}
}

func recordRun(ctx context.Context, cfg model.Config, logger *log.Logger, run model.Run) {
	if !cfg.History {
		return
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("failed to open history", "err", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()
	if _, err := st.InsertRun(ctx, run); err != nil {
		logger.Warn("failed to record run", "mode", run.Mode, "err", err)
	}
}
