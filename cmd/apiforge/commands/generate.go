package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/apiforge/apiforge/internal/config"
	"github.com/apiforge/apiforge/internal/debug"
	"github.com/apiforge/apiforge/internal/generator"
	"github.com/apiforge/apiforge/internal/generator/asyncapi"
	"github.com/apiforge/apiforge/internal/generator/backend"
	"github.com/apiforge/apiforge/internal/generator/openapi"
	"github.com/apiforge/apiforge/internal/loader"
	"github.com/apiforge/apiforge/internal/model"
	"github.com/apiforge/apiforge/internal/storage"
	"github.com/apiforge/apiforge/internal/ui"
	"github.com/apiforge/apiforge/internal/watch"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var (
		modelPath  string
		configPath string
		outputPath string
		watchMode  bool
		strict     bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [model-path]",
		Short: "Generate API docs and backend code",
		Long: `Generate artifacts from your data-model document.

This command will:
- Parse and validate the model file
- Generate OpenAPI and AsyncAPI documents
- Generate TypeScript backend scaffolding and infrastructure files`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions{
				modelPath:  getModelPath(modelPath, args),
				configPath: configPath,
				outputPath: outputPath,
				strict:     strict,
				dryRun:     dryRun,
			}
			if watchMode {
				return runGenerateWatch(opts)
			}
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "datamodel.json", "Path to model file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "apiforge.yaml", "Path to project config file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Watch model file for changes")
	cmd.Flags().BoolVar(&strict, "strict", false, "Enable strict-mode warnings")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be generated without writing files")

	return cmd
}

type generateOptions struct {
	modelPath  string
	configPath string
	outputPath string
	strict     bool
	dryRun     bool
}

func runGenerate(opts generateOptions) error {
	ui.PrintHeader("apiforge", "Generate")

	cfg, err := resolveProjectConfig(opts)
	if err != nil {
		return err
	}

	if exists, _ := afero.Exists(config.AppFs, opts.modelPath); !exists {
		return fmt.Errorf("model file not found: %s", opts.modelPath)
	}
	raw, err := afero.ReadFile(config.AppFs, opts.modelPath)
	if err != nil {
		return fmt.Errorf("failed to read model file: %w", err)
	}

	spinner, _ := ui.PrintSpinner("Parsing model...")
	m, diags, err := loader.New(opts.strict).ParseFile(opts.modelPath, raw)
	spinner.Stop()
	if err != nil {
		var vErr *loader.ValidationError
		if errors.As(err, &vErr) {
			ui.PrintError("Model validation failed:")
			if diags != nil && diags.HasErrors() {
				fmt.Fprintf(os.Stderr, "\n%s\n", diags.ToPrettyString())
			} else {
				fmt.Fprintf(os.Stderr, "\n%s\n", strings.Join(vErr.Errors, "\n"))
			}
			return fmt.Errorf("cannot generate from an invalid model")
		}
		return err
	}

	if len(diags.Warnings()) > 0 {
		ui.PrintWarning("Model validated with warnings:")
		fmt.Fprintf(os.Stderr, "\n%s\n", diags.WarningsToPrettyString())
	}

	info := pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	})
	info.Println(fmt.Sprintf("Model:  %s", opts.modelPath))
	info.Println(fmt.Sprintf("Output: %s", cfg.Generation.OutputDir))
	info.Println(fmt.Sprintf("Database: %s", cfg.Database.Type))
	fmt.Println()

	spinner, _ = ui.PrintSpinner("Generating artifacts...")
	results := generator.Run(cfg, m, selectTargets(cfg))
	spinner.Stop()

	failed := reportResults(results)

	if !opts.dryRun {
		if err := writeResults(cfg, results); err != nil {
			return err
		}
		absPath, _ := filepath.Abs(cfg.Generation.OutputDir)
		ui.PrintSuccess("Generated project at %s", absPath)
	} else {
		ui.PrintInfo("Dry run: no files written")
	}

	if failed > 0 {
		return fmt.Errorf("%d generator(s) reported errors", failed)
	}
	return nil
}

func runGenerateWatch(opts generateOptions) error {
	ui.PrintHeader("apiforge", "Generate (watch mode)")

	watcher, err := watch.NewWatcher(opts.modelPath, func() error {
		if err := runGenerate(opts); err != nil {
			// Keep watching; a broken edit should not end the session.
			ui.PrintError("Generation failed: %v", err)
		}
		ui.PrintInfo("Watching %s for changes (Ctrl+C to stop)...", opts.modelPath)
		return nil
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println()
	ui.PrintInfo("Stopping watcher")
	return nil
}

// resolveProjectConfig loads the project config when the file exists and
// falls back to defaults otherwise. An explicit --output wins over both.
func resolveProjectConfig(opts generateOptions) (*model.ProjectConfig, error) {
	var cfg *model.ProjectConfig
	if exists, _ := afero.Exists(config.AppFs, opts.configPath); exists {
		loaded, err := config.LoadProject(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		debug.Stage("generate").Debug("project config not found, using defaults", "path", opts.configPath)
		base := opts.modelPath[:len(opts.modelPath)-len(filepath.Ext(opts.modelPath))]
		cfg = config.DefaultProject(filepath.Base(base))
	}
	if opts.outputPath != "" {
		cfg.Generation.OutputDir = opts.outputPath
	}
	return cfg, nil
}

func selectTargets(cfg *model.ProjectConfig) []generator.Target {
	targets := []generator.Target{backend.New()}
	if cfg.Features.Swagger {
		targets = append(targets, openapi.New())
	}
	if cfg.Features.AsyncAPI {
		targets = append(targets, asyncapi.New())
	}
	return targets
}

// reportResults prints a per-generator table and returns how many failed.
func reportResults(results map[string]model.GenerationResult) int {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := 0
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		result := results[name]
		status := "ok"
		if !result.Success {
			status = "failed"
			failed++
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", len(result.Files)),
			fmt.Sprintf("%d", len(result.Warnings)),
			status,
		})
	}
	ui.PrintTable([]string{"Generator", "Files", "Warnings", "Status"}, rows)

	for _, name := range names {
		result := results[name]
		for _, msg := range result.Errors {
			ui.PrintError("%s: %s", name, msg)
		}
		for _, msg := range result.Warnings {
			ui.PrintWarning("%s: %s", name, msg)
		}
	}
	return failed
}

func writeResults(cfg *model.ProjectConfig, results map[string]model.GenerationResult) error {
	store := storage.NewFilesystemStorage(cfg.Generation.OutputDir)
	writeOpts := storage.WriteOptions{
		Overwrite: cfg.Generation.Overwrite,
		Backup:    cfg.Generation.Backup,
	}

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := results[name]
		if !result.Success {
			continue
		}
		report, err := store.WriteFiles(context.Background(), result.Files, writeOpts)
		if err != nil {
			return fmt.Errorf("failed to write %s output: %w", name, err)
		}
		debug.Stage("generate").Debug("wrote generator output",
			"generator", name,
			"written", len(report.Written),
			"skipped", len(report.Skipped),
			"backedUp", len(report.BackedUp))
		if len(report.Skipped) > 0 {
			ui.PrintWarning("%s: skipped %d existing file(s); use generation.overwrite to replace them", name, len(report.Skipped))
		}
	}
	return nil
}
