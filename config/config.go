// Package config reads and writes emitter option profiles as JSON.
//
// A profile is a flat JSON document:
//
//	{
//	  "maxListeners": 10,
//	  "wildcard": true,
//	  "async": true,
//	  "debug": false,
//	  "namespace": "editor"
//	}
//
// Missing keys fall back to the emitter defaults, so a partial profile is
// valid. Parsing uses gjson path queries; rendering uses sjson.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/pulse/emitter"
)

// ErrInvalidProfile is returned when a profile document is not valid JSON.
var ErrInvalidProfile = errors.New("invalid emitter profile")

// Profile mirrors the configurable emitter options.
type Profile struct {
	MaxListeners int
	Wildcard     bool
	Async        bool
	Debug        bool
	Namespace    string
}

// DefaultProfile returns a profile with the emitter defaults.
func DefaultProfile() Profile {
	return Profile{
		MaxListeners: 10,
		Wildcard:     true,
		Async:        true,
	}
}

// Parse reads a profile from a JSON document. Keys absent from the
// document keep their default values.
func Parse(data []byte) (Profile, error) {
	p := DefaultProfile()

	if !gjson.ValidBytes(data) {
		return p, fmt.Errorf("%w: malformed JSON", ErrInvalidProfile)
	}

	if v := gjson.GetBytes(data, "maxListeners"); v.Exists() {
		n := int(v.Int())
		if n < 0 {
			return p, fmt.Errorf("%w: maxListeners must be >= 0, got %d", ErrInvalidProfile, n)
		}
		p.MaxListeners = n
	}
	if v := gjson.GetBytes(data, "wildcard"); v.Exists() {
		p.Wildcard = v.Bool()
	}
	if v := gjson.GetBytes(data, "async"); v.Exists() {
		p.Async = v.Bool()
	}
	if v := gjson.GetBytes(data, "debug"); v.Exists() {
		p.Debug = v.Bool()
	}
	if v := gjson.GetBytes(data, "namespace"); v.Exists() {
		p.Namespace = v.String()
	}

	return p, nil
}

// Load reads a profile from a file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultProfile(), fmt.Errorf("read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// Render serializes a profile to a JSON document.
func Render(p Profile) ([]byte, error) {
	data := []byte("{}")
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, value)
	}

	set("maxListeners", p.MaxListeners)
	set("wildcard", p.Wildcard)
	set("async", p.Async)
	set("debug", p.Debug)
	if p.Namespace != "" {
		set("namespace", p.Namespace)
	}

	if err != nil {
		return nil, fmt.Errorf("render profile: %w", err)
	}
	return data, nil
}

// Save writes a profile to a file.
func Save(path string, p Profile) error {
	data, err := Render(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Options converts the profile into emitter constructor options.
func (p Profile) Options() []emitter.Option {
	opts := []emitter.Option{
		emitter.WithMaxListeners(p.MaxListeners),
		emitter.WithWildcard(p.Wildcard),
		emitter.WithAsync(p.Async),
		emitter.WithDebug(p.Debug),
	}
	if p.Namespace != "" {
		opts = append(opts, emitter.WithNamespace(p.Namespace))
	}
	return opts
}
