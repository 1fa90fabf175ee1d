// Package config loads qsift settings from a YAML file and QSIFT_ environment
// variables.
package config

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/vegasq/qsift/policy"
)

// FileName is the config file searched for when no path is given.
const FileName = "qsift"

// ErrUnknownEntity is returned when an entity is neither configured nor
// inferred.
var ErrUnknownEntity = errors.New("unknown entity")

type Config struct {
	Defaults Defaults                `mapstructure:"defaults"`
	Entities map[string]EntityConfig `mapstructure:"entities"`
	Server   Server                  `mapstructure:"server"`
}

// Defaults are the global options every entity starts from.
type Defaults struct {
	Filtering       bool `mapstructure:"filtering"`
	Sorting         bool `mapstructure:"sorting"`
	Paging          bool `mapstructure:"paging"`
	DefaultPageSize int  `mapstructure:"defaultPageSize"`
	MaximumPageSize int  `mapstructure:"maximumPageSize"`
}

// EntityConfig holds per-entity settings. Unset switches and zero page sizes
// fall back to Defaults.
type EntityConfig struct {
	Filtering       *bool            `mapstructure:"filtering"`
	Sorting         *bool            `mapstructure:"sorting"`
	Paging          *bool            `mapstructure:"paging"`
	DefaultPageSize int              `mapstructure:"defaultPageSize"`
	MaximumPageSize int              `mapstructure:"maximumPageSize"`
	Properties      []PropertyConfig `mapstructure:"properties"`
}

type PropertyConfig struct {
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"`
	Filter bool   `mapstructure:"filter"`
	Sort   bool   `mapstructure:"sort"`
}

type Server struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"corsOrigins"`
}

// Load reads the config file at path, or qsift.yaml from the working
// directory when path is empty. A missing qsift.yaml is not an error; a
// missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	opts := policy.DefaultOptions()
	v.SetDefault("defaults.filtering", opts.FilteringEnabled)
	v.SetDefault("defaults.sorting", opts.SortingEnabled)
	v.SetDefault("defaults.paging", opts.PagingEnabled)
	v.SetDefault("defaults.defaultPageSize", opts.DefaultPageSize)
	v.SetDefault("defaults.maximumPageSize", opts.MaximumPageSize)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.corsOrigins", []string{"*"})
}

// Options returns the global policy options.
func (c *Config) Options() policy.Options {
	return policy.Options{
		FilteringEnabled: c.Defaults.Filtering,
		SortingEnabled:   c.Defaults.Sorting,
		PagingEnabled:    c.Defaults.Paging,
		DefaultPageSize:  c.Defaults.DefaultPageSize,
		MaximumPageSize:  c.Defaults.MaximumPageSize,
	}
}

// Entity builds the named entity's policy over map records.
//
// Configured properties replace those of base, which may be nil or an entity
// inferred from the data. Configured switches and page sizes are applied on
// top either way. An entity that is neither configured nor given as base is
// an error.
func (c *Config) Entity(name string, base *policy.Entity[map[string]any]) (*policy.Entity[map[string]any], error) {
	ec, ok := c.lookup(name)
	if !ok {
		if base == nil {
			return nil, errors.WithHintf(errors.Wrapf(ErrUnknownEntity, "%q", name),
				"configured entities: %s", strings.Join(c.entityNames(), ", "))
		}
		return base, nil
	}

	entity := base
	if entity == nil || len(ec.Properties) > 0 {
		entity = policy.NewEntity[map[string]any](name)
	}

	for _, pc := range ec.Properties {
		kind, err := policy.ParseKind(pc.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %q property %q", name, pc.Name)
		}
		entity.Property(pc.Name, kind, policy.Field(pc.Name)).
			Filterable(pc.Filter).
			Sortable(pc.Sort)
	}

	if ec.Filtering != nil {
		entity.CanFilter(*ec.Filtering)
	}
	if ec.Sorting != nil {
		entity.CanSort(*ec.Sorting)
	}
	if ec.Paging != nil {
		entity.CanPage(*ec.Paging)
	}
	if ec.DefaultPageSize != 0 {
		entity.HasDefaultPageSize(ec.DefaultPageSize)
	}
	if ec.MaximumPageSize != 0 {
		entity.HasMaxPageSize(ec.MaximumPageSize)
	}
	return entity, nil
}

// lookup finds an entity ignoring case; viper lowercases map keys.
func (c *Config) lookup(name string) (EntityConfig, bool) {
	for key, ec := range c.Entities {
		if strings.EqualFold(key, name) {
			return ec, true
		}
	}
	return EntityConfig{}, false
}

func (c *Config) entityNames() []string {
	names := make([]string, 0, len(c.Entities))
	for key := range c.Entities {
		names = append(names, key)
	}
	slices.Sort(names)
	return names
}
