// Package config loads the run configuration from an optional YAML file,
// falling back to defaults when the file is absent. The upstream token is
// deliberately not part of the file; it comes from the environment only.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "plugin-modernizer-stats.yaml"

type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Data     DataConfig     `yaml:"data"`
}

// UpstreamConfig locates the metadata repository.
type UpstreamConfig struct {
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
}

// FetchConfig bounds the fetch concurrency.
type FetchConfig struct {
	BatchSize    int `yaml:"batch_size"`
	BatchDelayMS int `yaml:"batch_delay_ms"`
}

// DataConfig locates the bundle files: Dir is where fetch writes them and
// where explore/export read them from, unless URL points at a hosted copy.
type DataConfig struct {
	Dir string `yaml:"dir"`
	URL string `yaml:"url"`
}

// Load reads the configuration from file, or from the default location when
// file is empty. A missing file yields the defaults; a malformed one is an error.
func Load(file string) (*Config, error) {
	path := file
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && file == "" {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyDefaults(config)
	return config, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			Repository: "jenkins-infra/metadata-plugin-modernizer",
			Branch:     "main",
		},
		Fetch: FetchConfig{
			BatchSize:    10,
			BatchDelayMS: 200,
		},
		Data: DataConfig{
			Dir: "public/data",
		},
	}
}

func applyDefaults(c *Config) {
	defaults := Default()
	if c.Upstream.Repository == "" {
		c.Upstream.Repository = defaults.Upstream.Repository
	}
	if c.Upstream.Branch == "" {
		c.Upstream.Branch = defaults.Upstream.Branch
	}
	if c.Fetch.BatchSize <= 0 {
		c.Fetch.BatchSize = defaults.Fetch.BatchSize
	}
	if c.Fetch.BatchDelayMS < 0 {
		c.Fetch.BatchDelayMS = defaults.Fetch.BatchDelayMS
	}
	if c.Data.Dir == "" {
		c.Data.Dir = defaults.Data.Dir
	}
}

// BatchDelay returns the inter-batch pause as a duration.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.Fetch.BatchDelayMS) * time.Millisecond
}

// DataSource returns the bundle location the client side should load from:
// the hosted URL when configured, the local directory otherwise.
func (c *Config) DataSource() string {
	if c.Data.URL != "" {
		return c.Data.URL
	}
	return c.Data.Dir
}
