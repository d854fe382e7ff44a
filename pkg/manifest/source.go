package manifest

import (
	"context"
	"fmt"
	"io"
	"io/fs"
)

// maxArtifactSize bounds how much of an artifact is read into memory.
const maxArtifactSize = 32 << 20

// Source provides build artifacts by slash-separated name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSSource reads artifacts from an fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys, e.g. os.DirFS(".") or an embed.FS.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Open implements Source.
func (s *FSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, wrapFSError(err)
	}
	return f, nil
}

// Check reports whether the source root is readable.
// It matches the health.CheckFunc signature.
func (s *FSSource) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fs.Stat(s.fsys, "."); err != nil {
		return wrapFSError(err)
	}
	return nil
}

// Load reads the compiler config named configName and the manifest it points to.
func Load(ctx context.Context, src Source, configName string) (CompilerConfig, *Manifest, error) {
	if configName == "" {
		configName = DefaultConfigFile
	}

	data, err := readAll(ctx, src, configName)
	if err != nil {
		return CompilerConfig{}, nil, fmt.Errorf("read compiler config %q: %w", configName, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return CompilerConfig{}, nil, fmt.Errorf("parse compiler config %q: %w", configName, err)
	}

	m, err := LoadManifest(ctx, src, cfg.ManifestPath())
	if err != nil {
		return CompilerConfig{}, nil, err
	}
	return cfg, m, nil
}

// LoadManifest reads and validates the manifest at name.
func LoadManifest(ctx context.Context, src Source, name string) (*Manifest, error) {
	data, err := readAll(ctx, src, name)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", name, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", name, err)
	}
	return m, nil
}

func readAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxArtifactSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if len(data) > maxArtifactSize {
		return nil, fmt.Errorf("%w: artifact exceeds %d bytes", ErrReadFailed, maxArtifactSize)
	}
	return data, nil
}

// Ensure FSSource implements Source.
var _ Source = (*FSSource)(nil)
