package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Load reads the service configuration from dir/default.yaml and, when an
// environment name is given, overlays dir/<environment>.yaml on top of it.
// Overlay scalars win; subsystem settings merge key-by-key. A missing
// environment file is not an error.
func Load(dir, environment string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(dir, "default.yaml"))
	if err != nil {
		return nil, err
	}
	if environment != "" {
		overlay, err := loadFile(filepath.Join(dir, environment+".yaml"))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through with defaults only
		case err != nil:
			return nil, err
		default:
			merge(cfg, overlay)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func merge(base, overlay *Config) {
	if overlay.ListenAddr != "" {
		base.ListenAddr = overlay.ListenAddr
	}
	if overlay.RulesPath != "" {
		base.RulesPath = overlay.RulesPath
	}
	if base.Subsystems == nil {
		base.Subsystems = make(Subsystems)
	}
	for name, settings := range overlay.Subsystems {
		sec := base.Subsystems[name]
		if sec == nil {
			sec = make(map[string]any, len(settings))
			base.Subsystems[name] = sec
		}
		for k, v := range settings {
			sec[k] = v
		}
	}
}

// WatchFile invokes onChange whenever path is written or recreated (editors
// typically replace the file on save). Call the returned stop function to
// clean up.
func WatchFile(path string, onChange func()) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file watcher: %w", err)
	}
	// Watch the directory: watching the file directly breaks on rename-replace.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("file watcher add %s: %w", path, err)
	}

	abs, _ := filepath.Abs(path)
	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				evAbs, _ := filepath.Abs(ev.Name)
				if evAbs != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					onChange()
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}
