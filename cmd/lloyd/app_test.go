package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/testutil"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.RunContext(context.Background(), append([]string{"lloyd"}, args...))
	return stdout.String(), stderr.String(), err
}

func writePoints(t *testing.T, dir, name string, clusters int) string {
	t.Helper()
	points, _ := testutil.NewRNG(17).ClusteredPoints(120, 2, clusters, 0.3)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, testutil.CSV(points), 0o600))
	return path
}

func TestCluster_ToFile(t *testing.T) {
	dir := t.TempDir()
	source := writePoints(t, dir, "points.csv", 3)
	report := filepath.Join(dir, "report.json")
	metrics := filepath.Join(dir, "lloyd.prom")

	stdout, _, err := runApp(t, "cluster",
		"--source", source,
		"--k", "3",
		"--seed", "5",
		"--empty-policy", "reseed",
		"--track-cost",
		"--output", report,
		"--metrics-file", metrics,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "clustered 120 points into 3 clusters")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	rep, err := lloyd.DecodeReport(codec.JSON{}, data)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.K)
	assert.Equal(t, 2, rep.Dimension)

	size := 0
	for _, c := range rep.Clusters {
		size += c.Size
	}
	assert.Equal(t, 120, size)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `lloyd_runs_total{status="success"} 1`)
	assert.Contains(t, string(prom), "lloyd_loaded_points_total 120")
	assert.Contains(t, string(prom), `lloyd_loads_total{status="success"} 1`)

	stdout, _, err = runApp(t, "cost", "--report", report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "cost "), stdout)
}

func TestCluster_Stdout(t *testing.T) {
	dir := t.TempDir()
	source := writePoints(t, dir, "points.csv", 2)

	tests := []struct {
		name  string
		args  []string
		codec codec.Codec
	}{
		{"default", nil, codec.Default},
		{"yaml", []string{"--codec", "yaml"}, codec.YAML{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"cluster", "--source", source, "--k", "2", "--seed", "1",
				"--empty-policy", "reseed"}, tt.args...)
			stdout, _, err := runApp(t, args...)
			require.NoError(t, err)

			rep, err := lloyd.DecodeReport(tt.codec, []byte(stdout))
			require.NoError(t, err)
			assert.Equal(t, 2, rep.K)

			// Decoding and re-encoding reproduces the printed report.
			again, err := rep.Encode(tt.codec)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(string(again)), strings.TrimSpace(stdout))
		})
	}
}

func TestCluster_Prefix(t *testing.T) {
	dir := t.TempDir()
	shards := filepath.Join(dir, "shards")
	require.NoError(t, os.Mkdir(shards, 0o700))

	points, _ := testutil.NewRNG(2).ClusteredPoints(100, 2, 2, 0.2)
	require.NoError(t, os.WriteFile(filepath.Join(shards, "a.csv"), testutil.CSV(points[:50]), 0o600))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(testutil.CSV(points[50:]), nil)
	require.NoError(t, enc.Close())
	require.NoError(t, os.WriteFile(filepath.Join(shards, "b.csv.zst"), compressed, 0o600))

	stdout, stderr, err := runApp(t, "cluster",
		"--root", dir,
		"--source", "shards/",
		"--k", "2",
		"--seed", "3",
		"--empty-policy", "reseed",
		"--max-concurrent-loads", "1",
		"--upload", "report.json",
		"--log-level", "info",
		"--log-format", "json",
	)
	require.NoError(t, err)

	rep, err := lloyd.DecodeReport(codec.JSON{}, []byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.K)

	// The report lands next to the shard directory, not inside it.
	uploaded, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(stdout), string(uploaded))

	assert.Contains(t, stderr, `"msg":"dataset loaded"`)
	assert.Contains(t, stderr, `"msg":"clustering converged"`)
}

func TestCluster_EnvVars(t *testing.T) {
	dir := t.TempDir()
	source := writePoints(t, dir, "points.csv", 2)

	t.Setenv("LLOYD_SOURCE", source)
	t.Setenv("LLOYD_K", "2")
	t.Setenv("LLOYD_SEED", "8")
	t.Setenv("LLOYD_EMPTY_POLICY", "reseed")

	stdout, _, err := runApp(t, "cluster")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"k":2`)
}

func TestCluster_Errors(t *testing.T) {
	dir := t.TempDir()
	source := writePoints(t, dir, "points.csv", 2)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid k", []string{"--source", source, "--k", "120"}, "invalid k"},
		{"missing source", []string{"--k", "2"}, "--source is required"},
		{"missing file", []string{"--source", filepath.Join(dir, "nope.csv"), "--k", "2"}, "nope.csv"},
		{"unknown store", []string{"--source", source, "--k", "2", "--store", "ftp"}, "unknown store"},
		{"s3 without bucket", []string{"--source", "x.csv", "--k", "2", "--store", "s3"}, "--bucket"},
		{"minio without endpoint", []string{"--source", "x.csv", "--k", "2", "--store", "minio", "--bucket", "b"}, "--endpoint"},
		{"azure without container", []string{"--source", "x.csv", "--k", "2", "--store", "azure"}, "--bucket"},
		{"azure without credentials", []string{"--source", "x.csv", "--k", "2", "--store", "azure", "--bucket", "c", "--connection-string="}, "--account-url"},
		{"unknown codec", []string{"--source", source, "--k", "2", "--codec", "xml"}, "unknown codec"},
		{"unknown policy", []string{"--source", source, "--k", "2", "--empty-policy", "skip"}, "empty cluster policy"},
		{"bad comma", []string{"--source", source, "--k", "2", "--comma", ";;"}, "--comma"},
		{"bad log level", []string{"--source", source, "--k", "2", "--log-level", "loud"}, "--log-level"},
		{"bad log format", []string{"--source", source, "--k", "2", "--log-format", "xml"}, "--log-format"},
		{"negative columns", []string{"--source", source, "--k", "2", "--columns", "-1"}, "--columns"},
		{"upload into local prefix", []string{"--source", dir + "/", "--k", "2", "--upload", "report.json"}, "inside the source prefix"},
		{"upload into store prefix", []string{"--root", dir, "--source", "shards/", "--k", "2", "--upload", "shards/report.json"}, "inside the source prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, append([]string{"cluster"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCluster_FailedRunMetrics(t *testing.T) {
	dir := t.TempDir()
	source := writePoints(t, dir, "points.csv", 2)
	metrics := filepath.Join(dir, "lloyd.prom")

	_, _, err := runApp(t, "cluster", "--source", source, "--k", "0", "--metrics-file", metrics)
	require.Error(t, err)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `lloyd_runs_total{status="error"} 1`)
}

func TestCost_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runApp(t, "cost", "--report", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"k":1,"clusters":[]}`), 0o600))
	_, _, err = runApp(t, "cost", "--report", bad)
	assert.ErrorIs(t, err, lloyd.ErrConfiguration)
}
