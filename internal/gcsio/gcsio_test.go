package gcsio

import (
	"context"
	"path/filepath"
	"testing"
)

func TestIsGCSURI(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"gs://bucket/object.csv", true},
		{"gs://bucket/deep/path.csv", true},
		{"/tmp/local.csv", false},
		{"results.csv", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGCSURI(tt.input); got != tt.want {
			t.Errorf("IsGCSURI(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSplitGCSURI(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{
			name:       "simple object",
			input:      "gs://my-bucket/results.csv",
			wantBucket: "my-bucket",
			wantObject: "results.csv",
		},
		{
			name:       "nested object path",
			input:      "gs://my-bucket/runs/2026/results.csv",
			wantBucket: "my-bucket",
			wantObject: "runs/2026/results.csv",
		},
		{
			name:    "no object path",
			input:   "gs://my-bucket",
			wantErr: true,
		},
		{
			name:    "not a GCS URI",
			input:   "/tmp/results.csv",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := splitGCSURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitGCSURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("splitGCSURI(%q) = %q, %q; want %q, %q", tt.input, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}

func TestReadSourceWriteDest_Local(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.csv")
	content := []byte("turn_id,label\n1,True\n")

	if err := WriteDest(ctx, path, content); err != nil {
		t.Fatalf("WriteDest failed: %v", err)
	}

	got, err := ReadSource(ctx, path)
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("ReadSource = %q, want %q", got, content)
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	if _, err := ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
