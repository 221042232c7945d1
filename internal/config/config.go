package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/refresher"
)

type Config struct {
	BaseURL         string `json:"baseUrl"`
	RefreshInterval int    `json:"refreshInterval"`
	RequestTimeout  int    `json:"requestTimeout"`
	OverlapPolicy   string `json:"overlapPolicy"`
	Timezone        string `json:"timezone"`
	ListenAddress   string `json:"listenAddress"`
	LogDebug        bool   `json:"logDebug"`
	LogLevel        string `json:"logLevel"`
}

const appConfPrefix = "CSDR"

func Load() (Config, error) {
	var conf Config
	if err := envconfig.Process(appConfPrefix, &conf); err != nil {
		return conf, err
	}

	if conf.BaseURL == "" {
		conf.BaseURL = "http://localhost:5000"
	}
	if conf.RefreshInterval == 0 {
		conf.RefreshInterval = 30
	}
	if conf.OverlapPolicy == "" {
		conf.OverlapPolicy = refresher.PolicyAllow.String()
	}
	if conf.Timezone == "" {
		conf.Timezone = "Local"
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = ":8080"
	}
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}

	return conf, conf.validate()
}

func (c Config) validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be positive, got %d", c.RefreshInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %d", c.RequestTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c Config) Policy() (refresher.Policy, error) {
	return refresher.ParsePolicy(c.OverlapPolicy)
}

// Location resolves the zone used to display the last audit timestamp.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
