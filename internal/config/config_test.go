package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramlconv/internal/backend"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultXMLNamespace, cfg.XMLNamespace)
	assert.Equal(t, DefaultCSharpNamespace, cfg.Backends["csharp"].Namespace)
	assert.Empty(t, cfg.EnabledBackends())
	assert.Equal(t, ".", cfg.InputDir())
	assert.Equal(t, ".", cfg.OutputDir())
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "ramlconv.yaml", `
inputDirectory: raml
generateDescriptions: true
rootTypes: [Order]
excludeTypes: [Internal]
backends:
  xsd:
    enabled: true
    namespace: urn:orders
  CSharp:
    enabled: true
    outputDirectory: gen/cs
    indentSize: 4
typeMappings:
  csharp:
    datetime: DateTimeOffset
`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "raml", cfg.InputDir())
	assert.Equal(t, "raml", cfg.OutputDir())
	assert.True(t, cfg.GenerateDescriptions)
	assert.Equal(t, []string{"Order"}, cfg.RootTypes)
	assert.Equal(t, []backend.Kind{backend.XSD, backend.CSharp}, cfg.EnabledBackends())

	// loaded sections keep defaults they do not override
	assert.Equal(t, DefaultCSharpNamespace, cfg.Backends["csharp"].Namespace)
	assert.Equal(t, "DateTimeOffset", cfg.TypeMappings["csharp"]["datetime"])
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "ramlconv.json", `{"outputDirectory": "out", "backends": {"typescript": {"enabled": true, "disableLint": true}}}`)

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "out", cfg.OutputDir())
	assert.Equal(t, []backend.Kind{backend.TypeScript}, cfg.EnabledBackends())
	assert.True(t, cfg.OptionsFor(backend.TypeScript).DisableLint)
}

func TestLoadErrors(t *testing.T) {
	cfg := New()

	err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	err = cfg.LoadFile(writeConfig(t, "broken.json", `{"backends": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	err = cfg.LoadFile(writeConfig(t, "broken.conf", "backends: [\n  {"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Backends["cobol"] = Backend{Enabled: true}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.True(t, errors.Is(err, backend.ErrUnknownBackend))

	cfg = New()
	negative := -1
	cfg.Backends["xsd"] = Backend{IndentSize: &negative}
	require.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))

	cfg = New()
	cfg.TypeMappings["rust"] = map[string]string{"string": "String"}
	require.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
}

func TestOptionsForDoesNotLeakBetweenBackends(t *testing.T) {
	two := 2
	cfg := New()
	cfg.OutputDirectory = "out"
	cfg.GenerateDescriptions = true
	cfg.ExcludeTypes = []string{"Internal"}
	cfg.Backends["xsd"] = Backend{Enabled: true, Namespace: "urn:xsd", OutputDirectory: "out/xsd", IndentSize: &two}
	cfg.EnableBackend(backend.CSharp)
	cfg.TypeMappings["csharp"] = map[string]string{"datetime": "DateTime"}

	xsd := cfg.OptionsFor(backend.XSD)
	assert.Equal(t, "urn:xsd", xsd.XMLNamespace)
	assert.Equal(t, "out/xsd", xsd.OutputDirectory)
	assert.Equal(t, "  ", xsd.Indent("\t"))
	assert.Nil(t, xsd.TypeMappings)

	cs := cfg.OptionsFor(backend.CSharp)
	assert.Equal(t, DefaultXMLNamespace, cs.XMLNamespace)
	assert.Equal(t, "out", cs.OutputDirectory)
	assert.Equal(t, DefaultCSharpNamespace, cs.TargetNamespace)
	assert.Equal(t, "\t", cs.Indent("\t"))
	assert.Equal(t, "DateTime", cs.TypeMappings["datetime"])
	assert.True(t, cs.GenerateDescriptions)
	assert.False(t, cs.ShouldIncludeType("Internal"))

	ts := cfg.OptionsFor(backend.TypeScript)
	assert.Empty(t, ts.TargetNamespace)
	assert.Equal(t, DefaultXMLNamespace, ts.XMLNamespace)
}
