package main

import (
	"github.com/kbukum/rxkit/config"
	"github.com/kbukum/rxkit/pipeline"
	"github.com/kbukum/rxkit/validation"
)

const serviceName = "rxdemo"

// AppConfig is the rxdemo configuration file layout.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pipeline             pipeline.Spec   `yaml:"pipeline" mapstructure:"pipeline"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// TelemetryConfig controls OTLP export of stream metrics and traces.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Pipeline.Name == "" {
		c.Pipeline.Name = "default"
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c.Telemetry); err != nil {
		return err
	}
	return pipeline.Validate(c.Pipeline)
}
