// Package gcsio moves whole files between the local filesystem and Google
// Cloud Storage. Input tables, prompt files and output destinations may all be
// given either as local paths or gs:// URIs; callers use ReadSource and
// WriteDest and never care which kind they got.
package gcsio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// IsGCSURI reports whether the given path is a gs:// URI.
func IsGCSURI(s string) bool {
	return strings.HasPrefix(s, "gs://")
}

// splitGCSURI splits "gs://bucket/path/to/object" into bucket and object.
func splitGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}

	return parts[0], parts[1], nil
}

// FetchFromGCS downloads the file bytes from the given GCS URI.
// It assumes Application Default Credentials are configured.
func FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := splitGCSURI(gcsURI)
	if err != nil {
		return nil, err
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: creating storage client: %w", err)
	}
	defer storageClient.Close()

	rc, err := storageClient.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("fetchFromGCS: reading bytes: %w", err)
	}

	return data, nil
}

// UploadBytes uploads in-memory content to a GCS bucket under the given
// object name.
func UploadBytes(ctx context.Context, bucketName, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("copy content to GCS writer: %w", err)
	}

	// Close finalizes the upload.
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	return nil
}

// UploadFile uploads a local file to a GCS bucket under the given object name.
func UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file %q: %w", filePath, err)
	}
	return UploadBytes(ctx, bucketName, objectName, data)
}

// ReadSource reads the full contents of a local path or gs:// URI.
func ReadSource(ctx context.Context, pathOrURI string) ([]byte, error) {
	if IsGCSURI(pathOrURI) {
		return FetchFromGCS(ctx, pathOrURI)
	}

	data, err := os.ReadFile(pathOrURI)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", pathOrURI, err)
	}
	return data, nil
}

// WriteDest writes content to a local path or gs:// URI.
func WriteDest(ctx context.Context, pathOrURI string, data []byte) error {
	if IsGCSURI(pathOrURI) {
		bucketName, objectName, err := splitGCSURI(pathOrURI)
		if err != nil {
			return err
		}
		return UploadBytes(ctx, bucketName, objectName, data)
	}

	if err := os.WriteFile(pathOrURI, data, 0o644); err != nil {
		return fmt.Errorf("write file %q: %w", pathOrURI, err)
	}
	return nil
}
