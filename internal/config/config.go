/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads docserver settings.
//
// Sources, later ones winning:
//  1. built-in defaults
//  2. a YAML file (optional)
//  3. a .env file in the working directory (optional, never overrides
//     variables already set)
//  4. process environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"dirpx.dev/rejectx"
	"dirpx.dev/rejectx/classify"
	"dirpx.dev/rejectx/code"
	"dirpx.dev/rejectx/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Mongo     MongoConfig    `yaml:"mongo"`
	Log       logging.Config `yaml:"log"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	GRPC      GRPCConfig     `yaml:"grpc"`
	Overrides []Override     `yaml:"overrides"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	BodyLimit       int64         `yaml:"body_limit"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// GRPCConfig configures the gRPC listener. An empty Addr disables it.
type GRPCConfig struct {
	Addr string `yaml:"addr"`

	// Domain is the google.rpc.ErrorInfo domain attached to rejections.
	Domain string `yaml:"domain"`
}

// Override answers failures of one kind with another category, e.g.
//
//	overrides:
//	  - kind: invalid_identifier
//	    category: invalid_body
//	    message: Invalid Identifier
type Override struct {
	Kind     string `yaml:"kind"`
	Category string `yaml:"category"`
	Message  string `yaml:"message"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			BodyLimit:       1 << 20,
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "docserver",
			Collection: "documents",
		},
		Log:     logging.Config{Level: "info", Format: "text", Output: "stderr"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "docserver"},
		GRPC:    GRPCConfig{Domain: "rejectx.dirpx.dev"},
	}
}

// Load reads path (skipped when empty), applies .env and environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	str("DOCSERVER_ADDR", &cfg.Server.Addr)
	str("MONGO_URI", &cfg.Mongo.URI)
	str("MONGO_DATABASE", &cfg.Mongo.Database)
	str("MONGO_COLLECTION", &cfg.Mongo.Collection)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("LOG_OUTPUT", &cfg.Log.Output)
	str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	str("GRPC_ADDR", &cfg.GRPC.Addr)
	str("GRPC_ERROR_DOMAIN", &cfg.GRPC.Domain)

	if v, ok := os.LookupEnv("METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: METRICS_ENABLED=%q", ErrInvalid, v)
		}
		cfg.Metrics.Enabled = b
	}
	if v, ok := os.LookupEnv("DOCSERVER_SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: DOCSERVER_SHUTDOWN_TIMEOUT=%q", ErrInvalid, v)
		}
		cfg.Server.ShutdownTimeout = d
	}
	return nil
}

// Validate checks the settings that cannot be caught later.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: server.addr is empty", ErrInvalid))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: server.shutdown_timeout must be positive", ErrInvalid))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: server.body_limit must be positive", ErrInvalid))
	}
	if c.GRPC.Addr != "" && strings.TrimSpace(c.GRPC.Domain) == "" {
		errs = append(errs, fmt.Errorf("%w: grpc.domain is required when grpc.addr is set", ErrInvalid))
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
		errs = append(errs, fmt.Errorf("%w: mongo.uri, mongo.database and mongo.collection are required", ErrInvalid))
	}
	if _, err := c.ClassifyOptions(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ClassifyOptions turns Overrides into classifier options.
func (c *Config) ClassifyOptions() ([]classify.Option, error) {
	opts := make([]classify.Option, 0, len(c.Overrides))
	for i, o := range c.Overrides {
		k, err := rejectx.ParseKind(o.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides[%d].kind: %v", ErrInvalid, i, err)
		}
		cat, err := code.Parse(o.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: overrides[%d].category: %v", ErrInvalid, i, err)
		}
		opts = append(opts, classify.WithKindRule(k, cat, o.Message))
	}
	return opts, nil
}
