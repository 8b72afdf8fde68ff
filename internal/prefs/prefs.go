// Package prefs persists per-repository UI preferences in git local config.
package prefs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/interpretive-systems/stagium/internal/gitx"
)

// Prefs represents persisted UI preferences. The *Set flags distinguish
// "never saved" from a saved zero value.
type Prefs struct {
	Wrap          bool
	WrapSet       bool
	SideBySide    bool
	SideSet       bool
	SelectMode    bool
	SelectModeSet bool
	LeftWidth     int
	LeftSet       bool
}

const (
	keyWrap       = "stagium.wrap"
	keySideBySide = "stagium.sideBySide"
	keySelectMode = "stagium.selectMode"
	keyLeftWidth  = "stagium.leftWidth"
)

// Load reads preferences from git local config via the given runner.
func Load(r gitx.Runner) Prefs {
	var p Prefs
	if s, ok := get(r, keyWrap); ok {
		p.WrapSet = true
		p.Wrap = parseBool(s)
	}
	if s, ok := get(r, keySideBySide); ok {
		p.SideSet = true
		p.SideBySide = parseBool(s)
	}
	if s, ok := get(r, keySelectMode); ok {
		p.SelectModeSet = true
		p.SelectMode = parseBool(s)
	}
	if s, ok := get(r, keyLeftWidth); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			p.LeftSet = true
			p.LeftWidth = n
		}
	}
	return p
}

// SaveWrap persists the wrap preference.
func SaveWrap(r gitx.Runner, v bool) error {
	return set(r, keyWrap, strconv.FormatBool(v))
}

// SaveSideBySide persists the side-by-side preference.
func SaveSideBySide(r gitx.Runner, v bool) error {
	return set(r, keySideBySide, strconv.FormatBool(v))
}

// SaveSelectMode persists the per-file selection preference.
func SaveSelectMode(r gitx.Runner, v bool) error {
	return set(r, keySelectMode, strconv.FormatBool(v))
}

// SaveLeftWidth persists the file list column width.
func SaveLeftWidth(r gitx.Runner, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid left width: %d", w)
	}
	return set(r, keyLeftWidth, strconv.Itoa(w))
}

func get(r gitx.Runner, key string) (string, bool) {
	out, err := r.Run("config", "--get", key)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}

func set(r gitx.Runner, key, value string) error {
	if _, err := r.Run("config", "--local", key, value); err != nil {
		return fmt.Errorf("git config %s: %w", key, err)
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
