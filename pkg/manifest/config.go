package manifest

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default artifact names.
const (
	DefaultConfigFile   = "reactssr.config.yaml"
	DefaultManifestFile = "manifest.json"
	DefaultPublicPath   = "/build/"
)

// CompilerConfig locates the build output directories.
// Paths are slash-separated and relative to the source root.
type CompilerConfig struct {
	AssetsBuildDirectory string `yaml:"assetsBuildDirectory"`
	ServerBuildDirectory string `yaml:"serverBuildDirectory"`
	PublicPath           string `yaml:"publicPath"`
}

// ParseConfig decodes a YAML compiler config and validates it.
// Unknown fields are rejected to catch typos early.
func ParseConfig(data []byte) (CompilerConfig, error) {
	var cfg CompilerConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return CompilerConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return CompilerConfig{}, err
	}
	return cfg, nil
}

// Validate reports whether the config can locate a manifest.
func (c CompilerConfig) Validate() error {
	if c.ServerBuildDirectory == "" {
		return fmt.Errorf("%w: serverBuildDirectory is required", ErrInvalidConfig)
	}
	if strings.HasPrefix(c.ServerBuildDirectory, "..") {
		return fmt.Errorf("%w: serverBuildDirectory must stay inside the working directory", ErrInvalidConfig)
	}
	return nil
}

// ManifestPath returns the manifest location inside the server build directory.
func (c CompilerConfig) ManifestPath() string {
	return path.Join(c.ServerBuildDirectory, DefaultManifestFile)
}

// PublicPathOrDefault returns the URL prefix of client assets, always
// with leading and trailing slashes.
func (c CompilerConfig) PublicPathOrDefault() string {
	p := strings.Trim(strings.TrimSpace(c.PublicPath), "/")
	if p == "" {
		return DefaultPublicPath
	}
	return "/" + p + "/"
}

func (c *CompilerConfig) normalize() {
	c.AssetsBuildDirectory = cleanDir(c.AssetsBuildDirectory)
	c.ServerBuildDirectory = cleanDir(c.ServerBuildDirectory)
}

// cleanDir turns "./build/" into "build" so it can be used with fs.FS.
func cleanDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(strings.TrimPrefix(dir, "/")), "./")
}
