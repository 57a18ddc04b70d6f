// Package artifacts moves trained model files between the training output,
// a serving directory and S3.
package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	TokenizerFile = "tokenizer.json"
	ModelFile     = "review_model.gob"
	ReportFile    = "training_report.json"
)

// ServingFiles are required by the server. The report is optional.
var ServingFiles = []string{TokenizerFile, ModelFile}

// ObjectStore is the subset of *s3.Client used here.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Location struct {
	Bucket string
	Prefix string
}

func (l S3Location) key(name string) string {
	if l.Prefix == "" {
		return name
	}
	return path.Join(l.Prefix, name)
}

func IsS3URI(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// ParseS3URI splits s3://bucket/prefix into its parts.
func ParseS3URI(uri string) (S3Location, error) {
	if !IsS3URI(uri) {
		return S3Location{}, fmt.Errorf("[Artifacts] not an s3 uri: %q", uri)
	}
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return S3Location{}, fmt.Errorf("[Artifacts] missing bucket in %q", uri)
	}
	return S3Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// CopyToDir copies the serving files, plus the report when present, from
// srcDir into destDir. It is a no-op when both name the same directory.
func CopyToDir(srcDir, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("[Artifacts] failed to create %s: %w", destDir, err)
	}
	same, err := sameDir(srcDir, destDir)
	if err != nil {
		return err
	}
	if same {
		slog.Info("[Artifacts] Artifacts already in place",
			slog.String("dir", destDir))
		return nil
	}

	for _, name := range publishable(srcDir) {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return err
		}
		slog.Info("[Artifacts] Copied artifact",
			slog.String("file", name),
			slog.String("dest", destDir))
	}
	return nil
}

func sameDir(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("[Artifacts] failed to stat %s: %w", a, err)
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, fmt.Errorf("[Artifacts] failed to stat %s: %w", b, err)
	}
	return os.SameFile(infoA, infoB), nil
}

// Upload puts the artifacts under loc.
func Upload(ctx context.Context, store ObjectStore, srcDir string, loc S3Location) error {
	for _, name := range publishable(srcDir) {
		data, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			return fmt.Errorf("[Artifacts] failed to read %s: %w", name, err)
		}
		_, err = store.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.key(name)),
			Body:   bytes.NewReader(data),
		})
		if err != nil {
			return fmt.Errorf("[Artifacts] failed to upload %s: %w", name, err)
		}
		slog.Info("[Artifacts] Uploaded artifact",
			slog.String("bucket", loc.Bucket),
			slog.String("key", loc.key(name)))
	}
	return nil
}

// Download fetches the serving files from loc into destDir.
func Download(ctx context.Context, store ObjectStore, loc S3Location, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("[Artifacts] failed to create %s: %w", destDir, err)
	}
	for _, name := range ServingFiles {
		out, err := store.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.key(name)),
		})
		if err != nil {
			return fmt.Errorf("[Artifacts] failed to download %s: %w", name, err)
		}
		data, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return fmt.Errorf("[Artifacts] failed to read %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(destDir, name), data, 0644); err != nil {
			return fmt.Errorf("[Artifacts] failed to write %s: %w", name, err)
		}
		slog.Info("[Artifacts] Downloaded artifact",
			slog.String("key", loc.key(name)),
			slog.String("dest", destDir))
	}
	return nil
}

// publishable lists the serving files and the report if it exists.
func publishable(srcDir string) []string {
	names := append([]string(nil), ServingFiles...)
	if _, err := os.Stat(filepath.Join(srcDir, ReportFile)); err == nil {
		names = append(names, ReportFile)
	}
	return names
}

// copyFile writes through a temp file in the destination directory so a
// failed copy never leaves a truncated artifact behind.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("[Artifacts] failed to open %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("[Artifacts] failed to create temp file for %s: %w", dst, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("[Artifacts] failed to copy %s: %w", src, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("[Artifacts] failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("[Artifacts] failed to sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[Artifacts] failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("[Artifacts] failed to replace %s: %w", dst, err)
	}
	return nil
}
