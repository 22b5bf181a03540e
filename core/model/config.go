package model

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

// Config はモデルの記述ファイル（YAML）の内容
//
//	name: churn-classifier
//	log_level: 20
//	target_names: [stay, leave]
//	unique_values: [0, 1]
type Config struct {
	Name         string    `yaml:"name"`
	LogLevel     *int      `yaml:"log_level"`
	TargetNames  []string  `yaml:"target_names"`
	UniqueValues []float64 `yaml:"unique_values"`
}

// LoadConfig はYAMLを読み込みConfigを返す
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model config")
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse model config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile はファイルからConfigを読み込む
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open model config %s", path)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate は設定値を検証する
func (c *Config) Validate() error {
	if c.LogLevel != nil && *c.LogLevel < 0 {
		return errors.NewValidationError("log_level", "must be non-negative", *c.LogLevel)
	}
	return nil
}

// Options はConfigをOptionに変換する。未指定の項目は含めない。
func (c *Config) Options() []Option {
	var opts []Option
	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}
	if c.LogLevel != nil {
		opts = append(opts, WithLogLevel(*c.LogLevel))
	}
	if len(c.TargetNames) > 0 {
		opts = append(opts, WithTargetNames(c.TargetNames))
	}
	if len(c.UniqueValues) > 0 {
		opts = append(opts, WithUniqueValues(c.UniqueValues))
	}
	return opts
}
