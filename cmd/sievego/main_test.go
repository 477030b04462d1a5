package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStore(t *testing.T) {
	tests := []struct {
		raw     string
		want    storeLocation
		wantErr bool
	}{
		{raw: "", want: storeLocation{dir: "."}},
		{raw: "/tmp/runs", want: storeLocation{dir: "/tmp/runs"}},
		{raw: "s3://bucket", want: storeLocation{scheme: "s3", bucket: "bucket"}},
		{raw: "s3://bucket/runs/a", want: storeLocation{scheme: "s3", bucket: "bucket", prefix: "runs/a"}},
		{raw: "minio://localhost:9000/bucket", want: storeLocation{scheme: "minio", host: "localhost:9000", bucket: "bucket"}},
		{raw: "minio://localhost:9000/bucket/x", want: storeLocation{scheme: "minio", host: "localhost:9000", bucket: "bucket", prefix: "x"}},
		{raw: "minio://localhost:9000", wantErr: true},
		{raw: "s3:///prefix", wantErr: true},
		{raw: "gs://bucket", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseStore(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand(t *testing.T) {
	var stderr bytes.Buffer

	cf, err := parseCommand("double", []string{"-gamma", "0.8", "-strategy", "parallel", "-workers", "4"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cf.gamma)
	assert.Equal(t, "parallel", cf.strategy)
	assert.Equal(t, 4, cf.workers)

	_, err = parseCommand("nv", nil, &stderr)
	assert.ErrorIs(t, err, errUsage)

	_, err = parseCommand("sample", []string{"-N", "4"}, &stderr)
	assert.ErrorIs(t, err, errUsage)

	cf, err = parseCommand("sample", []string{"-N", "4", "-out", "x"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "go-json", cf.codec)

	_, err = parseCommand("bkz", nil, &stderr)
	assert.ErrorIs(t, err, errUsage)

	_, err = parseCommand("gauss", []string{"-c", "3", "extra"}, &stderr)
	assert.ErrorIs(t, err, errUsage)
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	global := []string{"-n", "6", "-r", "3", "-q", "11", "-seed", "9", "-log-level", "error"}

	t.Run("Usage", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run(ctx, global, &stdout, &stderr))
		assert.Equal(t, 2, run(ctx, []string{"-log-level", "loud", "nv"}, &stdout, &stderr))
	})

	t.Run("SampleThenNV", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		args := append(append([]string{}, global...), "sample", "-N", "24", "-out", "s0.snap", "-store", dir,
			"-codec", "json", "-compression", "lz4")
		require.Equal(t, 0, run(ctx, args, &stdout, &stderr), stderr.String())
		assert.FileExists(t, filepath.Join(dir, "s0.snap"))
		assert.FileExists(t, filepath.Join(dir, "s0.snap.basis"))

		jsonPath := filepath.Join(dir, "nv.json")
		htmlPath := filepath.Join(dir, "nv.html")
		stdout.Reset()
		args = append(append([]string{}, global...), "nv", "-gamma", "0.9", "-store", dir, "-in", "s0.snap",
			"-json", jsonPath, "-report", htmlPath)
		require.Equal(t, 0, run(ctx, args, &stdout, &stderr), stderr.String())
		assert.Contains(t, stdout.String(), "nv: status=completed")

		data, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		var rep map[string]any
		require.NoError(t, json.Unmarshal(data, &rep))
		assert.Equal(t, float64(24), rep["initial_size"])
		assert.FileExists(t, htmlPath)
	})

	t.Run("Gauss", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		args := append(append([]string{}, global...), "gauss", "-c", "5", "-max-generations", "200")
		require.Equal(t, 0, run(ctx, args, &stdout, &stderr), stderr.String())
		assert.Contains(t, stdout.String(), "gauss: status=")
	})

	t.Run("UnknownCodec", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		args := append(append([]string{}, global...), "sample", "-N", "4", "-out", "x.snap", "-store", dir, "-codec", "msgpack")
		assert.Equal(t, 1, run(ctx, args, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "msgpack")
	})

	t.Run("MissingInput", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		args := append(append([]string{}, global...), "nv", "-store", dir, "-in", "missing.snap")
		assert.Equal(t, 1, run(ctx, args, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "missing.snap")
	})
}
