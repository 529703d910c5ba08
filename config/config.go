/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads storekit configuration from the environment, with an
// optional YAML file override for tooling. A .env file can be loaded ahead
// of FromEnv with godotenv (the provisioning CLI and the integration tests
// do this).
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Backend selector values.
const (
	BackendDirect = "direct"
	BackendRemote = "remote"
)

// DirectConfig holds connection parameters for the direct storage backend.
type DirectConfig struct {
	// Region is the AWS region the tables, buckets, and queues live in.
	Region string `env:"STOREKIT_AWS_REGION" yaml:"region"`

	// AccessKey and SecretKey are static credentials.
	AccessKey string `env:"STOREKIT_AWS_ACCESS_KEY" yaml:"accessKey"`
	SecretKey string `env:"STOREKIT_AWS_SECRET_KEY" yaml:"secretKey"`

	// Endpoint optionally overrides the service endpoint. Pointing it at a
	// local development emulator disables the hierarchical file store,
	// which such endpoints do not support reliably.
	Endpoint string `env:"STOREKIT_AWS_ENDPOINT" yaml:"endpoint"`
}

// RemoteConfig holds connection parameters for the remote resource backend.
type RemoteConfig struct {
	// BaseURL is the base address of the resource API.
	BaseURL string `env:"STOREKIT_REMOTE_BASE_URL" yaml:"baseUrl"`

	// APIKey, when set, is sent as the x-functions-key header on every
	// request.
	APIKey string `env:"STOREKIT_REMOTE_API_KEY" yaml:"apiKey"`
}

// Config selects and configures exactly one backend.
type Config struct {
	// Backend is "direct" or "remote".
	Backend string `env:"STOREKIT_BACKEND" envDefault:"direct" yaml:"backend"`

	Direct DirectConfig `yaml:"direct"`
	Remote RemoteConfig `yaml:"remote"`
}

// FromEnv parses configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromFile parses configuration from a YAML file.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Config{Backend: BackendDirect}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the backend selector and the selected backend's required
// parameters.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendDirect:
		if c.Direct.Region == "" {
			return fmt.Errorf("direct backend requires a region")
		}
	case BackendRemote:
		if c.Remote.BaseURL == "" {
			return fmt.Errorf("remote backend requires a base URL")
		}
	default:
		return fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendDirect, BackendRemote)
	}
	return nil
}
