// Package settings holds the process-wide posting defaults. They are loaded
// from a YAML file at startup, written back when changed through the API, and
// reloaded when the file is edited on disk.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"jobeditor/internal/posting"
)

// Provider serves the current defaults. The zero path keeps everything in
// memory.
type Provider struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	defaults posting.Defaults
}

// Load reads path. A missing file yields the standard defaults.
func Load(path string, log zerolog.Logger) (*Provider, error) {
	p := &Provider{path: strings.TrimSpace(path), log: log, defaults: posting.StandardDefaults()}
	if p.path == "" {
		return p, nil
	}
	d, err := readFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", p.path).Msg("posting defaults file not found, using built-in defaults")
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	p.defaults = d
	return p, nil
}

// Current returns the defaults in effect.
func (p *Provider) Current() posting.Defaults {
	p.mu.RLock()
	defer p.mu.RUnlock()
	d := p.defaults
	if d.CountryCurrencies != nil {
		cp := make(map[string]string, len(d.CountryCurrencies))
		for k, v := range d.CountryCurrencies {
			cp[k] = v
		}
		d.CountryCurrencies = cp
	}
	return d
}

// Save replaces the defaults and writes them to the file, if any.
func (p *Provider) Save(d posting.Defaults) error {
	d = normalizeCountries(d.Normalize())
	if p.path != "" {
		if err := writeFile(p.path, d); err != nil {
			return err
		}
	}
	p.mu.Lock()
	p.defaults = d
	p.mu.Unlock()
	return nil
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so editors that replace the file are picked up too.
func (p *Provider) Watch(ctx context.Context) error {
	if p.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		name := filepath.Clean(p.path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				p.reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.log.Warn().Err(err).Msg("posting defaults watcher error")
			}
		}
	}()
	p.log.Info().Str("path", p.path).Msg("watching posting defaults")
	return nil
}

func (p *Provider) reload() {
	d, err := readFile(p.path)
	if err != nil {
		// keep the previous defaults; a half-written file is retried on the next event
		p.log.Warn().Err(err).Str("path", p.path).Msg("posting defaults reload failed")
		return
	}
	p.mu.Lock()
	p.defaults = d
	p.mu.Unlock()
	p.log.Info().Str("path", p.path).Msg("posting defaults reloaded")
}

func readFile(path string) (posting.Defaults, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return posting.Defaults{}, err
	}
	var d posting.Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return posting.Defaults{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalizeCountries(d.Normalize()), nil
}

func writeFile(path string, d posting.Defaults) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure defaults directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write defaults: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace defaults: %w", err)
	}
	return nil
}

func normalizeCountries(d posting.Defaults) posting.Defaults {
	if len(d.CountryCurrencies) == 0 {
		d.CountryCurrencies = nil
		return d
	}
	out := make(map[string]string, len(d.CountryCurrencies))
	for k, v := range d.CountryCurrencies {
		k, v = strings.ToUpper(strings.TrimSpace(k)), strings.ToUpper(strings.TrimSpace(v))
		if k != "" && v != "" {
			out[k] = v
		}
	}
	d.CountryCurrencies = out
	return d
}
