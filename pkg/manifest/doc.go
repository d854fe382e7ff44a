// Package manifest loads the build artifacts produced by the frontend
// toolchain: the compiler configuration and the route manifest.
//
// Artifacts are loaded once at process start and treated as read-only
// afterwards. Any loading or validation failure is a configuration error
// and should abort startup.
//
// # Compiler Config
//
// The compiler config is a YAML file (default reactssr.config.yaml) that
// locates the build directories relative to the working directory:
//
//	assetsBuildDirectory: public/build
//	serverBuildDirectory: build
//	publicPath: /build/
//
// # Manifest
//
// The manifest is a JSON file named manifest.json inside the server build
// directory. It carries the versioned route table, the entry module and
// its imports, the route module map, and optionally the build mode and the
// dev server port:
//
//	{
//	  "assets": {
//	    "version": "a1b2c3",
//	    "entry": {"module": "/build/entry.client.js", "imports": []},
//	    "routes": {"root": {"id": "root", "path": "", "module": "/build/root.js"}},
//	    "url": "/build/manifest-a1b2c3.js"
//	  },
//	  "routes": {"root": {"module": "/build/root.js"}},
//	  "mode": "production"
//	}
//
// A manifest without a "root" route or with an unknown mode is rejected.
//
// # Sources
//
// Artifacts are read through a [Source]. [FSSource] reads from any fs.FS
// (os.DirFS, embed.FS). [S3Source] reads from an S3-compatible bucket so
// that several servers can share one build.
//
//	src := manifest.NewFSSource(os.DirFS("."))
//	cfg, m, err := manifest.Load(ctx, src, manifest.DefaultConfigFile)
//
// # Error Handling
//
// All errors wrap one of the package sentinels:
//
//   - [ErrInvalidConfig] - compiler config is missing fields or is malformed
//   - [ErrInvalidManifest] - manifest JSON is malformed
//   - [ErrMissingRootRoute] - manifest has no "root" route
//   - [ErrInvalidMode] - manifest mode is neither "production" nor "dev"
//   - [ErrNotFound] - artifact does not exist in the source
//   - [ErrAccessDenied] - source refused access to the artifact
//   - [ErrReadFailed] - any other source failure
package manifest
