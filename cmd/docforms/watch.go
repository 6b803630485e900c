package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docforms/internal/config"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-analyze a template whenever it or its overrides change",
	Long: `Watch analyzes the template once, then again every time the file, the
overrides directory or the config file changes. Saves that do not change the
placeholder set or the overrides are served from the cache and not printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		defer watcher.Close()

		// Editors replace files on save, so the parent directory is watched.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
		}
		overridesDir := ""
		if dir := a.manager.Get().OverridesDir; dir != "" {
			if overridesDir, err = filepath.Abs(dir); err != nil {
				return err
			}
			if err := watcher.Add(overridesDir); err != nil {
				return fmt.Errorf("watch %s: %w", overridesDir, err)
			}
		}

		configChanged := make(chan *config.Config, 1)
		if a.manager.ConfigFile() != "" {
			a.manager.OnChange(func(cfg *config.Config) {
				select {
				case configChanged <- cfg:
				default:
				}
			})
			a.manager.WatchConfig()
		}

		w := &templateWatcher{app: a, cmd: cmd, path: path}
		w.run()

		var (
			fire     <-chan time.Time
			reload   bool
			latest   = a.manager.Get()
			schedule = func() { fire = time.After(watchDebounce) }
		)
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				switch {
				case filepath.Clean(event.Name) == path:
					schedule()
				case overridesDir != "" && within(event.Name, overridesDir):
					reload = true
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				a.logger.Warn("watcher error", "error", err)
			case cfg := <-configChanged:
				latest = cfg
				reload = true
				schedule()
			case <-fire:
				fire = nil
				if reload {
					reload = false
					if err := a.reload(latest); err != nil {
						a.logger.Error("reload overrides", "error", err)
						continue
					}
					a.logger.Info("overrides reloaded")
				}
				w.run()
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "delay before re-analyzing after a change")
}

type templateWatcher struct {
	app  *app
	cmd  *cobra.Command
	path string
}

func (w *templateWatcher) run() {
	result, err := w.app.analyze(w.cmd, w.path)
	if err != nil {
		w.app.logger.Error("analyze", "file", w.path, "error", err)
		return
	}
	if result.Cached {
		w.app.logger.Info("placeholders unchanged", "file", w.path, "fingerprint", result.Schema.Fingerprint)
		return
	}
	if err := w.app.emit(w.cmd, result, ""); err != nil {
		w.app.logger.Error("render", "file", w.path, "error", err)
	}
}

func within(name, dir string) bool {
	rel, err := filepath.Rel(dir, filepath.Clean(name))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
