package compiler

import (
	"errors"
	"fmt"
	"os"

	"github.com/brimdata/splc/compiler/placement"
	"github.com/brimdata/splc/compiler/toolkit"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"
)

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	ToolkitPaths   []string        `yaml:"toolkitPaths"`
	ProductVersion string          `yaml:"productVersion"`
	CurrentToolkit string          `yaml:"currentToolkit"`
	SPLToolkit     string          `yaml:"splToolkit"`
	Language       string          `yaml:"language"`
	ModelCacheSize int             `yaml:"modelCacheSize"`
	Placement      PlacementConfig `yaml:"placement"`
}

type PlacementConfig struct {
	IterationBound   int    `yaml:"iterationBound"`
	MessageNodeBound int    `yaml:"messageNodeBound"`
	FusionOptimize   bool   `yaml:"fusionOptimize"`
	RelaxRestartable bool   `yaml:"relaxRestartable"`
	Seed             uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		ProductVersion: "4.3",
		SPLToolkit:     "spl",
		Language:       "en",
		ModelCacheSize: 128,
		Placement: PlacementConfig{
			IterationBound:   placement.DefaultIterationBound,
			MessageNodeBound: placement.DefaultMessageNodeBound,
		},
	}
}

// LoadConfig reads a YAML configuration.  Settings missing from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := yaml.UnmarshalWithOptions(b, &conf, yaml.DisallowUnknownField()); err != nil {
		return conf, fmt.Errorf("%s: %w: %s", path, ErrConfig, yaml.FormatError(err, false, true))
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

func (c Config) Validate() error {
	if _, err := c.Product(); err != nil {
		return err
	}
	if _, err := c.Tag(); err != nil {
		return err
	}
	if c.ModelCacheSize <= 0 {
		return fmt.Errorf("%w: modelCacheSize must be positive", ErrConfig)
	}
	return nil
}

func (c Config) Product() (toolkit.Version, error) {
	v, err := toolkit.ParseVersion(c.ProductVersion)
	if err != nil {
		return v, fmt.Errorf("%w: productVersion: %w", ErrConfig, err)
	}
	return v, nil
}

func (c Config) Tag() (language.Tag, error) {
	if c.Language == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return tag, fmt.Errorf("%w: language: %w", ErrConfig, err)
	}
	return tag, nil
}

func (c Config) PlacementOptions() placement.Options {
	return placement.Options{
		IterationBound:   c.Placement.IterationBound,
		MessageNodeBound: c.Placement.MessageNodeBound,
		FusionOptimize:   c.Placement.FusionOptimize,
		RelaxRestartable: c.Placement.RelaxRestartable,
		Seed:             c.Placement.Seed,
	}
}
