package artifacts

import (
	"context"

	"github.com/spacesedan/reviewlens/internal/clients"
)

// Publish sends the artifacts in srcDir to dest, which is either a local
// directory or an s3:// prefix.
func Publish(ctx context.Context, srcDir, dest, region, endpoint string) error {
	if !IsS3URI(dest) {
		return CopyToDir(srcDir, dest)
	}
	loc, err := ParseS3URI(dest)
	if err != nil {
		return err
	}
	client, err := clients.GetS3Client(ctx, region, endpoint)
	if err != nil {
		return err
	}
	return Upload(ctx, client, srcDir, loc)
}

// Fetch downloads the serving artifacts from an s3:// prefix into destDir.
func Fetch(ctx context.Context, uri, destDir, region, endpoint string) error {
	loc, err := ParseS3URI(uri)
	if err != nil {
		return err
	}
	client, err := clients.GetS3Client(ctx, region, endpoint)
	if err != nil {
		return err
	}
	return Download(ctx, client, loc, destDir)
}
