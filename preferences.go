package cursor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// preferenceFile is the on-disk form of the user's motion choice.
type preferenceFile struct {
	ReducedMotion *bool `yaml:"reduced_motion,omitempty"`
}

// Preferences layers a persisted user motion choice over a base environment.
// Until the user makes a choice the base preference is reported unchanged.
type Preferences struct {
	base     EnvironmentCapabilities
	path     string
	override *bool

	listeners motionListeners
	baseSub   Subscription
}

// OpenPreferences loads the saved choice from path. A missing file means no
// choice has been made; an empty path keeps the choice in memory only.
func OpenPreferences(base EnvironmentCapabilities, path string) (*Preferences, error) {
	p := &Preferences{base: base, path: path}
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var f preferenceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	p.override = f.ReducedMotion
	return p, nil
}

// PrefersReducedMotion implements EnvironmentCapabilities.
func (p *Preferences) PrefersReducedMotion() bool {
	if p.override != nil {
		return *p.override
	}
	if p.base == nil {
		return false
	}
	return p.base.PrefersReducedMotion()
}

// TouchPrimary implements EnvironmentCapabilities.
func (p *Preferences) TouchPrimary() bool {
	if p.base == nil {
		return false
	}
	return p.base.TouchPrimary()
}

// OnReducedMotionChange implements EnvironmentCapabilities. The base
// environment is subscribed only while at least one listener exists.
func (p *Preferences) OnReducedMotionChange(fn func(bool)) Subscription {
	id, _ := p.listeners.add(fn)
	if p.baseSub == nil && p.base != nil {
		p.baseSub = p.base.OnReducedMotionChange(p.baseChanged)
	}
	return NewSubscription(func() {
		p.listeners.remove(id)
		if len(p.listeners.subs) == 0 && p.baseSub != nil {
			p.baseSub.Cancel()
			p.baseSub = nil
		}
	})
}

func (p *Preferences) baseChanged(reduced bool) {
	if p.override != nil {
		return
	}
	p.listeners.notify(reduced)
}

// HasOverride reports whether the user has made an explicit choice.
func (p *Preferences) HasOverride() bool {
	return p.override != nil
}

// SetReducedMotion records an explicit choice, persists it, and notifies
// listeners if the effective preference changed.
func (p *Preferences) SetReducedMotion(reduced bool) error {
	was := p.PrefersReducedMotion()
	p.override = &reduced
	if err := p.save(); err != nil {
		return err
	}
	if was != reduced {
		p.listeners.notify(reduced)
	}
	return nil
}

// Toggle flips the effective preference.
func (p *Preferences) Toggle() error {
	return p.SetReducedMotion(!p.PrefersReducedMotion())
}

// Reset discards the explicit choice and falls back to the base environment.
func (p *Preferences) Reset() error {
	was := p.PrefersReducedMotion()
	p.override = nil
	if err := p.save(); err != nil {
		return err
	}
	if now := p.PrefersReducedMotion(); now != was {
		p.listeners.notify(now)
	}
	return nil
}

func (p *Preferences) save() error {
	if p.path == "" {
		return nil
	}
	data, err := yaml.Marshal(preferenceFile{ReducedMotion: p.override})
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
