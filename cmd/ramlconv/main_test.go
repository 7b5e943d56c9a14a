package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramlconv/internal/config"
	"ramlconv/internal/converter"
	"ramlconv/internal/output"
)

const library = `#%RAML 1.0 Library
usage: Orders
types:
  Order:
    description: A purchase order
    properties:
      id: integer
      note?: string
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	output.SetOutput(&buf)
	t.Cleanup(func() {
		output.SetOutput(nil)
		output.SetVerbose(false)
	})

	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func inputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.raml"), []byte(library), 0o644))
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ramlconv dev")
}

func TestConvertFlags(t *testing.T) {
	in := inputDir(t)
	out := filepath.Join(t.TempDir(), "gen")

	stdout, err := execute(t, "convert", "--input-dir", in, "--output-dir", out, "--xml", "--cs", "--cs-ns", "Acme.Orders", "--desc", "--root-type", "Order", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[xsd]: 1 types")
	assert.Contains(t, stdout, filepath.Join(out, "order.xsd"))

	cs, err := os.ReadFile(filepath.Join(out, "orders.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(cs), "namespace Acme.Orders")
	assert.Contains(t, string(cs), "A purchase order")
	assert.NoFileExists(t, filepath.Join(out, "orders.json"))
}

func TestConvertIsDefaultCommand(t *testing.T) {
	in := inputDir(t)

	_, err := execute(t, "--input-dir", in, "--json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(in, "orders.json"))
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	in := inputDir(t)
	fromFile := filepath.Join(t.TempDir(), "file")
	fromEnv := filepath.Join(t.TempDir(), "env")

	cfgPath := filepath.Join(t.TempDir(), "ramlconv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("inputDirectory: "+in+"\noutputDirectory: "+fromFile+"\nbackends:\n  typescript:\n    enabled: true\n"), 0o644))
	t.Setenv("RAMLCONV_OUTPUT_DIR", fromEnv)

	_, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(fromEnv, "orders.ts"))
	assert.NoDirExists(t, fromFile)
}

func TestInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ramlconv.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backends:\n  cobol:\n    enabled: true\n"), 0o644))

	_, err := execute(t, "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestFailedDocumentExitsWithError(t *testing.T) {
	in := inputDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.raml"), []byte("- not\n- a library\n"), 0o644))

	stdout, err := execute(t, "--input-dir", in, "--json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, converter.ErrConversionFailed))
	assert.Contains(t, stdout, "1 of 2 conversions failed")
	assert.FileExists(t, filepath.Join(in, "orders.json"))
}

func TestNoBackendSelected(t *testing.T) {
	_, err := execute(t, "--input-dir", inputDir(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, converter.ErrNoBackends))
}
