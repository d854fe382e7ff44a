package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present and no other files are requested.
const DefaultEnvFile = ".env"

type loadOptions struct {
	environment map[string]string
	prefix      string
	files       []string
}

// Option configures Load.
type Option func(*loadOptions)

// WithPrefix prepends prefix to every env tag, e.g. "STAGING_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles reads the given .env files instead of DefaultEnvFile.
// Missing files are an error.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, files...)
	}
}

// WithEnvironment replaces the process environment as the variable source.
func WithEnvironment(environ map[string]string) Option {
	return func(o *loadOptions) {
		o.environment = maps.Clone(environ)
	}
}

// Load parses environment variables into v based on its env struct tags.
//
// Values from .env files fill in variables that are not set in the
// environment; the environment always wins. The process environment is
// never modified.
//
// Example:
//
//	type Config struct {
//	    Addr      string `env:"REACTSSR_ADDR" envDefault:":8080"`
//	    Renderer  string `env:"REACTSSR_RENDERER_URL,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	environ := o.environment
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	fileValues, err := readEnvFiles(o.files)
	if err != nil {
		return err
	}
	for k, val := range fileValues {
		if _, ok := environ[k]; !ok {
			environ[k] = val
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: environ,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func readEnvFiles(files []string) (map[string]string, error) {
	if len(files) == 0 {
		values, err := godotenv.Read(DefaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadingEnvFile, DefaultEnvFile, err)
		}
		return values, nil
	}

	out := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadingEnvFile, f, err)
		}
		for k, val := range values {
			if _, ok := out[k]; !ok {
				out[k] = val
			}
		}
	}
	return out, nil
}
