// Package config loads the pdoc project configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/loader"
	"github.com/signadot/protodoc/parse"
	"github.com/signadot/protodoc/resolve"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Name is the base name of the configuration file, searched for in the
// current directory with a yaml, yml or json extension.
const Name = "pdoc"

type Config struct {
	Roots        []string   `mapstructure:"roots"`
	Extensions   []string   `mapstructure:"extensions"`
	HTTP         HTTPConfig `mapstructure:"http"`
	S3           S3Config   `mapstructure:"s3"`
	CacheSize    int        `mapstructure:"cache_size"`
	TypedScalars bool       `mapstructure:"typed_scalars"`
	Reorder      bool       `mapstructure:"reorder"`
	Format       string     `mapstructure:"format"`
}

type HTTPConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Retries uint64        `mapstructure:"retries"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load reads the configuration from file, or from the configuration file
// in the current directory if file is empty, falling back to defaults when
// there is none.  PDOC_ prefixed environment variables override the file,
// for example PDOC_HTTP_BASE_URL.
func Load(fs afero.Fs, file string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	v.SetDefault("roots", []string{"."})
	v.SetDefault("extensions", loader.DefaultExtensions)
	v.SetDefault("http.base_url", "")
	v.SetDefault("http.retries", 3)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("cache_size", 128)
	v.SetDefault("typed_scalars", false)
	v.SetDefault("reorder", false)
	v.SetDefault("format", "json")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := format.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if len(c.Roots) == 0 {
		return fmt.Errorf("roots must not be empty")
	}
	return nil
}

func (c *Config) OutputFormat() format.Format {
	f, _ := format.ParseFormat(c.Format)
	return f
}

func (c *Config) ParseOptions() []parse.ParseOption {
	return []parse.ParseOption{parse.TypedScalars(c.TypedScalars)}
}

func (c *Config) ResolveOptions(log *zap.Logger) []resolve.Option {
	return []resolve.Option{resolve.WithLogger(log), resolve.WithReorder(c.Reorder)}
}

// Loader assembles the configured loaders: files under the roots, then
// HTTP and S3 when configured, behind a cache when cache_size is positive.
func (c *Config) Loader(ctx context.Context, fs afero.Fs, log *zap.Logger) (loader.Loader, error) {
	chain := loader.Chain{
		loader.NewFS(fs,
			loader.FSRoots(c.Roots...),
			loader.FSExtensions(c.Extensions...),
			loader.FSParseOptions(c.ParseOptions()...)),
	}
	log.Debug("file loader", zap.Strings("roots", c.Roots))
	if c.HTTP.BaseURL != "" {
		h := loader.NewHTTP(c.HTTP.BaseURL)
		h.MaxRetries = c.HTTP.Retries
		h.Timeout = c.HTTP.Timeout
		h.ParseOpts = c.ParseOptions()
		chain = append(chain, h)
		log.Debug("http loader", zap.String("base_url", c.HTTP.BaseURL))
	}
	if c.S3.Bucket != "" {
		s3l, err := loader.NewS3(ctx, &loader.S3Config{
			Bucket:   c.S3.Bucket,
			Prefix:   c.S3.Prefix,
			Region:   c.S3.Region,
			Endpoint: c.S3.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		s3l.ParseOpts = c.ParseOptions()
		chain = append(chain, s3l)
		log.Debug("s3 loader", zap.String("bucket", c.S3.Bucket), zap.String("prefix", c.S3.Prefix))
	}
	var res loader.Loader = chain
	if c.CacheSize > 0 {
		cache, err := loader.NewCache(chain, c.CacheSize)
		if err != nil {
			return nil, err
		}
		res = cache
	}
	return res, nil
}
