package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// NetworkPath is a network description file or a directory of them.
	NetworkPath string `validate:"required"`
	// OutputPath receives the rendered graph. Empty derives it from
	// NetworkPath; "-" writes to the app's output writer.
	OutputPath string
	Format     string `validate:"oneof=dot svg png pdf"`

	// Graph renders the network; Tables adds a probability table per variable.
	Graph  bool
	Tables bool

	// Model builds and checks the Bayesian model and prints its CPDs.
	Model bool
	// ModelPath receives a YAML export of the model when set.
	ModelPath string

	Watch bool

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return nil, fmt.Errorf("%w: %s is required", ErrInvalidConfig, fe.Field())
			}
			return nil, fmt.Errorf("%w: %s must be one of [%s], got %q", ErrInvalidConfig, fe.Field(), fe.Param(), fe.Value())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !cfg.Graph && !cfg.Model {
		return nil, fmt.Errorf("%w: nothing to do, enable the graph or the model", ErrInvalidConfig)
	}
	if cfg.ModelPath != "" && !cfg.Model {
		return nil, fmt.Errorf("%w: a model output path needs the model enabled", ErrInvalidConfig)
	}
	return &cfg, nil
}
