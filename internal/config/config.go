// Package config loads network definitions from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/internal/tensor"
)

// Initializer kinds.
const (
	InitLiteral = "literal"
	InitNormal  = "normal"
)

// Config describes a three-layer network.
type Config struct {
	InputSize    int     `yaml:"input_size"`
	HiddenSize   int     `yaml:"hidden_size"`
	OutputSize   int     `yaml:"output_size"`
	LearningRate float64 `yaml:"learning_rate"`
	Init         Init    `yaml:"init"`

	WeightsInputHidden  [][]float64 `yaml:"weights_input_hidden,omitempty"`
	WeightsHiddenOutput [][]float64 `yaml:"weights_hidden_output,omitempty"`
}

// Init selects how initial weights are produced.
type Init struct {
	Kind string  `yaml:"kind"`
	Seed uint64  `yaml:"seed,omitempty"`
	Mean float64 `yaml:"mean,omitempty"`
	Std  float64 `yaml:"std,omitempty"` // 0 means 1/sqrt(layer size)
}

// Default returns the reference 3-3-3 network with fixed literal weights.
func Default() *Config {
	return &Config{
		InputSize:    3,
		HiddenSize:   3,
		OutputSize:   3,
		LearningRate: 0.3,
		Init:         Init{Kind: InitLiteral},
		WeightsInputHidden: [][]float64{
			{-0.59306787, 0.25274925, -0.32602831},
			{-0.16685239, 0.22542431, -0.36808796},
			{0.81883787, 1.29124618, -0.6584239},
		},
		WeightsHiddenOutput: [][]float64{
			{0.80042512, 0.35423876, 0.16241759},
			{-1.52660991, -0.82271924, 0.23120044},
			{0.66190966, 0.31868365, 0.39380777},
		},
	}
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a Config from YAML. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Init.Kind == "" {
		cfg.Init.Kind = InitLiteral
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifies the config describes a buildable network.
// Weight shapes are checked when the network is built.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.InputSize <= 0 || c.HiddenSize <= 0 || c.OutputSize <= 0 {
		return fmt.Errorf("layer sizes must be > 0 (got %d-%d-%d)", c.InputSize, c.HiddenSize, c.OutputSize)
	}
	switch c.initKind() {
	case InitLiteral:
		if len(c.WeightsInputHidden) == 0 || len(c.WeightsHiddenOutput) == 0 {
			return errors.New("literal init requires weights_input_hidden and weights_hidden_output")
		}
	case InitNormal:
		if c.Init.Std < 0 {
			return fmt.Errorf("init.std must be >= 0 (got %v)", c.Init.Std)
		}
		if len(c.WeightsInputHidden) != 0 || len(c.WeightsHiddenOutput) != 0 {
			return errors.New("normal init does not take literal weights")
		}
	default:
		return fmt.Errorf("unknown init kind %q", c.Init.Kind)
	}
	return nil
}

// initKind returns the configured init kind; an empty kind means literal.
func (c *Config) initKind() string {
	if c.Init.Kind == "" {
		return InitLiteral
	}
	return c.Init.Kind
}

// Network builds the network described by c.
func (c *Config) Network() (*nn.Network, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := nn.Config{
		InputSize:    c.InputSize,
		HiddenSize:   c.HiddenSize,
		OutputSize:   c.OutputSize,
		LearningRate: c.LearningRate,
	}

	switch c.initKind() {
	case InitLiteral:
		wih, err := tensor.FromRows(c.WeightsInputHidden)
		if err != nil {
			return nil, fmt.Errorf("%w: weights_input_hidden: %w", nn.ErrShapeMismatch, err)
		}
		who, err := tensor.FromRows(c.WeightsHiddenOutput)
		if err != nil {
			return nil, fmt.Errorf("%w: weights_hidden_output: %w", nn.ErrShapeMismatch, err)
		}
		cfg.InputHidden = nn.Literal(wih)
		cfg.HiddenOutput = nn.Literal(who)
	case InitNormal:
		normal := nn.NewNormal(c.Init.Seed)
		normal.Mean = c.Init.Mean
		normal.Std = c.Init.Std
		cfg.InputHidden = normal
		cfg.HiddenOutput = normal
	}

	return nn.NewFromConfig(cfg)
}
