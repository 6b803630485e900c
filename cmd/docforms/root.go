package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docforms/internal/config"
	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/orchestrator"
	"github.com/goliatone/go-docforms/pkg/overrides"
	"github.com/goliatone/go-docforms/pkg/render"
	"github.com/goliatone/go-docforms/pkg/renderers/jsonout"
	"github.com/goliatone/go-docforms/pkg/renderers/openapi"
	"github.com/goliatone/go-docforms/pkg/renderers/yamlout"
)

var (
	cfgFile        string
	outputFormat   string
	logLevel       string
	templateID     string
	onlySections   string
	onlyCategories string
)

var rootCmd = &cobra.Command{
	Use:   "docforms",
	Short: "Turn petition templates into fillable form schemas",
	Long: `Docforms reads a petition template (plain text or a Google Docs JSON
export), extracts its {{placeholder}} keys and builds a sectioned form:
client data, authors, defendants, third parties, process data, authorities
and a trailing section for keys no rule recognised.

Administrator overrides (labels, types, required flags, order) are read
from the directory named by overrides_dir in docforms.yaml.`,
	Version:      gitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./docforms.yaml or ~/.docforms/docforms.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "", "output renderer: json, yaml or openapi (default from config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)",
	)
	rootCmd.PersistentFlags().StringVar(
		&templateID, "template", "", "template id used for overrides and caching (default: file name)",
	)
	rootCmd.PersistentFlags().StringVar(
		&onlySections, "only", "", "comma separated section names or prefixes (person_active*) to keep",
	)
	rootCmd.PersistentFlags().StringVar(
		&onlyCategories, "only-category", "", "comma separated categories to keep",
	)

	rootCmd.AddCommand(analyzeCmd, personasCmd, tableCmd, fillCmd, watchCmd, versionCmd)
}

// app holds the collaborators every subcommand needs.
type app struct {
	manager *config.Manager
	logger  *slog.Logger
	cache   orchestrator.Cache
	orch    *orchestrator.Orchestrator
}

func newApp(cmd *cobra.Command) (*app, error) {
	manager, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}

	logCfg := manager.Get().Log
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logger, err := logCfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if path := manager.ConfigFile(); path != "" {
		logger.Debug("config loaded", "file", path)
	}

	a := &app{manager: manager, logger: logger}
	if manager.Get().Cache {
		a.cache = orchestrator.NewMemoryCache()
	}
	if err := a.reload(manager.Get()); err != nil {
		return nil, err
	}
	return a, nil
}

// reload rebuilds the orchestrator from cfg. The cache is shared across
// reloads; entries built from other overrides or titles are rebuilt on demand.
func (a *app) reload(cfg *config.Config) error {
	store, err := overrides.LoadWithDefaults(cfg.OverridesDir)
	if err != nil {
		return err
	}
	titles, err := cfg.TitleMap()
	if err != nil {
		return err
	}

	a.orch = orchestrator.New(
		orchestrator.WithLogger(a.logger),
		orchestrator.WithOverrides(store),
		orchestrator.WithCache(a.cache),
		orchestrator.WithTitles(titles),
	)
	a.logger.Debug("overrides loaded", "dir", cfg.OverridesDir, "templates", len(store.TemplateIDs()))
	return nil
}

func (a *app) analyze(cmd *cobra.Command, path string) (orchestrator.Result, error) {
	doc, err := document.ReadFile(path)
	if err != nil {
		return orchestrator.Result{}, err
	}
	id := templateID
	if id == "" {
		id = doc.ID
	}
	return a.orch.Analyze(cmd.Context(), orchestrator.Request{TemplateID: id, Document: doc})
}

// renderer resolves the --output renderer, falling back to the configured
// one. An empty view uses the configured view.
func (a *app) renderer(view render.View) (render.Renderer, error) {
	cfg := a.manager.Get()
	if view == "" {
		parsed, err := render.ParseView(cfg.View)
		if err != nil {
			return nil, err
		}
		view = parsed
	}

	registry := render.NewRegistry()
	registry.MustRegister(jsonout.New(jsonout.WithView(view)))
	registry.MustRegister(yamlout.New(yamlout.WithView(view)))
	registry.MustRegister(openapi.New())
	for alias, name := range render.DefaultAliases() {
		if err := registry.Alias(alias, name); err != nil {
			return nil, err
		}
	}
	return registry.Resolve(outputFormat, cfg.Renderer)
}

func renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Subset: render.FieldSubset{
			Sections:   render.ParseTokenList(onlySections),
			Categories: render.ParseTokenList(onlyCategories),
		},
	}
}

// emit renders result and writes it to the command output.
func (a *app) emit(cmd *cobra.Command, result orchestrator.Result, view render.View) error {
	renderer, err := a.renderer(view)
	if err != nil {
		return err
	}
	out, err := renderer.Render(cmd.Context(), result, renderOptions())
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = fmt.Fprintln(cmd.OutOrStdout())
	}
	return err
}
