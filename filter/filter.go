/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

// Package filter decides, for each structured field the decoder meets,
// whether its payload should be parsed or skipped.
package filter

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/holocm/afp-dump/internal/errcollector"
)

// ConfigError is returned whenever a filter configuration is unreadable or
// shaped wrong. It is always fatal at construction time.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid filter configuration: %s", e.Err)
	}
	return fmt.Sprintf("invalid filter configuration (%s): %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// config is the on-disk shape: exactly one recognized key.
type config struct {
	SFNames []string `toml:"sf_names"`
}

// Filter decides whether a given structured-field short name should be
// fully decoded (true) or skipped (false).
type Filter struct {
	allowAll bool
	allowed  map[string]bool
}

// All returns a filter that admits every structured field.
func All() *Filter {
	return &Filter{allowAll: true}
}

// New builds an allow-list filter from an explicit set of short names. An
// empty list is a configuration error, matching the on-disk rule.
func New(names []string) (*Filter, error) {
	if len(names) == 0 {
		return nil, &ConfigError{Err: fmt.Errorf("sf_names must not be empty")}
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	return &Filter{allowed: allowed}, nil
}

// Load reads a TOML filter configuration from path. The document must
// contain only the recognized "sf_names" key; anything else is rejected. All
// violations (unrecognized keys, an empty list) are collected and reported
// together through an ErrorCollector instead of stopping at the first one,
// so a misconfigured file can be fixed in a single pass.
func Load(path string) (*Filter, error) {
	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var ec errcollector.ErrorCollector
	for _, key := range meta.Undecoded() {
		ec.Addf("unrecognized key %q", key.String())
	}
	if len(cfg.SFNames) == 0 {
		ec.Addf("sf_names must not be empty")
	}
	if ec.HasErrors() {
		return nil, &ConfigError{Path: path, Err: ec.Join()}
	}

	return New(cfg.SFNames)
}

// ShouldParse reports whether a structured field with the given short name
// should have its payload fully decoded.
func (f *Filter) ShouldParse(shortName string) bool {
	if f == nil || f.allowAll {
		return true
	}
	return f.allowed[shortName]
}
