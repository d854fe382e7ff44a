package manifest

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for the manifest package.
var (
	ErrInvalidConfig    = errors.New("manifest: invalid compiler config")
	ErrInvalidManifest  = errors.New("manifest: invalid manifest")
	ErrMissingRootRoute = errors.New("manifest: root route is missing")
	ErrInvalidMode      = errors.New("manifest: invalid mode")

	ErrNotFound     = errors.New("manifest: artifact not found")
	ErrAccessDenied = errors.New("manifest: access denied")
	ErrReadFailed   = errors.New("manifest: read failed")
)

// wrapFSError maps fs errors onto package sentinels.
func wrapFSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	default:
		return fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
}

// wrapS3Error maps S3 API errors onto package sentinels.
// The original error is formatted with %v so callers match on sentinels only.
func wrapS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", ErrReadFailed, err)
}
