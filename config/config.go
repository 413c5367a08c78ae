// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads process configuration from SATCHEL_* environment
// variables and wires the configured persistence engine.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/storage"
	"github.com/poiesic/satchel/storage/badger"
	"github.com/poiesic/satchel/storage/sqlite"
)

// Persistence engine names accepted by SATCHEL_ENGINE.
const (
	EngineBadger = "badger"
	EngineSQLite = "sqlite"
)

// Config holds the process configuration.
type Config struct {
	// DataDir is the directory persisted collections live under.
	DataDir string `env:"SATCHEL_DATA_DIR" envDefault:"./data"`

	// Engine selects the persistence engine, badger or sqlite.
	Engine string `env:"SATCHEL_ENGINE" envDefault:"badger"`

	// LogLevel is the slog level name: debug, info, warn or error.
	LogLevel string `env:"SATCHEL_LOG_LEVEL" envDefault:"info"`

	// DefaultPageSize is the page size used when a query names none.
	DefaultPageSize int `env:"SATCHEL_DEFAULT_PAGE_SIZE" envDefault:"25"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks for values struct parsing cannot reject.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineBadger, EngineSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Engine)
	}

	if c.DefaultPageSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, c.DefaultPageSize)
	}

	return nil
}

// OpenDB opens the database on the engine the configuration names.
func OpenDB(cfg Config, opts ...satchel.DBOption) (*satchel.DB, error) {
	medium, err := openMedium(cfg)
	if err != nil {
		return nil, err
	}
	return satchel.OpenMedium(medium, opts...)
}

func openMedium(cfg Config) (storage.Medium, error) {
	switch cfg.Engine {
	case EngineBadger:
		return badger.Open(cfg.DataDir)
	case EngineSQLite:
		return sqlite.Open(cfg.DataDir)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
}
