package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramlconv/internal/model"
)

type recordingSchema struct {
	events []string
	types  []string
}

func (s *recordingSchema) record(format string, args ...interface{}) {
	s.events = append(s.events, fmt.Sprintf(format, args...))
}

// recordingProjection logs each pipeline step into its schema.
type recordingProjection struct {
	schema  *recordingSchema
	failOn  string
	dropOn  string
	writeFn func(w io.Writer) error
}

func (p *recordingProjection) Language() string      { return "fake" }
func (p *recordingProjection) FileExtension() string { return "txt" }

func (p *recordingProjection) Initialize(doc *model.Document, opts Options) *recordingSchema {
	p.schema = &recordingSchema{}
	p.schema.record("init")
	return p.schema
}

func (p *recordingProjection) ProjectType(doc *model.Document, t model.Type, opts Options) (string, bool, error) {
	p.schema.record("project %s", t.Name)
	if t.Name == p.failOn {
		return "", false, errors.Newf("cannot project %s", t.Name)
	}
	if t.Name == p.dropOn {
		return "", false, nil
	}
	return t.Name, true, nil
}

func (p *recordingProjection) Accumulate(schema *recordingSchema, projected string) {
	schema.record("accumulate %s", projected)
	schema.types = append(schema.types, projected)
}

func (p *recordingProjection) Finalize(schema *recordingSchema, opts Options) {
	schema.record("finalize")
}

func (p *recordingProjection) Write(w io.Writer, schema *recordingSchema, opts Options) error {
	schema.record("write")
	if p.writeFn != nil {
		return p.writeFn(w)
	}
	_, err := io.WriteString(w, strings.Join(schema.types, "\n"))
	return err
}

func (p *recordingProjection) RootArtifact(doc *model.Document, t model.Type, opts Options) (Artifact, error) {
	p.schema.record("root %s", t.Name)
	return Artifact{
		Name: strings.ToLower(t.Name) + ".root",
		Render: func(w io.Writer) error {
			_, err := io.WriteString(w, t.Name)
			return err
		},
	}, nil
}

func (p *recordingProjection) AddExternalReferences(schema *recordingSchema, doc *model.Document, opts Options) {
	for _, a := range doc.Uses {
		schema.record("reference %s", a.Name)
	}
}

func sampleDocument() *model.Document {
	return &model.Document{
		Path: filepath.Join("in", "orders.raml"),
		Uses: []model.Alias{{Name: "common", Path: "common.raml"}},
		Types: []model.Type{
			{Name: "Order", Shape: model.ShapeObject, IsRootType: true},
			{Name: "Line", Shape: model.ShapeObject},
			{Name: "Status", Shape: model.ShapeEnum},
		},
	}
}

func TestRunStateOrder(t *testing.T) {
	dir := t.TempDir()
	p := &recordingProjection{}

	result, err := Run(sampleDocument(), p, Options{OutputDirectory: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"init",
		"project Order", "accumulate Order",
		"project Line", "accumulate Line",
		"project Status", "accumulate Status",
		"finalize",
		"root Order",
		"reference common",
		"write",
	}, p.schema.events)

	assert.Equal(t, "fake", result.Backend)
	assert.Equal(t, 3, result.Types)
	assert.Equal(t, []string{
		filepath.Join(dir, "order.root"),
		filepath.Join(dir, "orders.txt"),
	}, result.Artifacts)

	content, err := os.ReadFile(filepath.Join(dir, "orders.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Order\nLine\nStatus", string(content))
}

func TestRunSkipsFailedProjection(t *testing.T) {
	dir := t.TempDir()
	p := &recordingProjection{failOn: "Line", dropOn: "Status"}

	result, err := Run(sampleDocument(), p, Options{OutputDirectory: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"Order"}, p.schema.types)
	assert.Equal(t, []string{"Line"}, result.Skipped)
	assert.Equal(t, 1, result.Types)
}

func TestRunWithoutAliasesSkipsReferences(t *testing.T) {
	doc := sampleDocument()
	doc.Uses = nil
	p := &recordingProjection{}

	_, err := Run(doc, p, Options{OutputDirectory: t.TempDir()})
	require.NoError(t, err)

	for _, e := range p.schema.events {
		assert.NotContains(t, e, "reference")
	}
}

func TestRunWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Run(sampleDocument(), &recordingProjection{}, Options{OutputDirectory: filepath.Join(blocker, "out")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactWrite))
}

func TestRunRenderFailureLeavesNoArtifact(t *testing.T) {
	dir := t.TempDir()
	doc := sampleDocument()
	doc.Types[0].IsRootType = false
	p := &recordingProjection{writeFn: func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("encoder exploded")
	}}

	_, err := Run(doc, p, Options{OutputDirectory: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactWrite))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestErasedBackend(t *testing.T) {
	dir := t.TempDir()
	backend := Erase[*recordingSchema, string](&recordingProjection{})

	assert.Equal(t, "fake", backend.Language())
	assert.Equal(t, "txt", backend.FileExtension())

	result, err := backend.Run(sampleDocument(), Options{OutputDirectory: dir})
	require.NoError(t, err)
	assert.Len(t, result.Artifacts, 2)
}

func TestOptionsIndent(t *testing.T) {
	four := 4
	zero := 0

	assert.Equal(t, "\t", Options{}.Indent("\t"))
	assert.Equal(t, "    ", Options{IndentSize: &four}.Indent("\t"))
	assert.Equal(t, "  ", Options{IndentSize: &zero}.Indent("  "))
}

func TestWriteArtifactReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	path, err := WriteArtifact(dir, Artifact{Name: "out.txt", Render: func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}})
	require.NoError(t, err)
	assert.Equal(t, target, path)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestRunHonoursTypeFilters(t *testing.T) {
	p := &recordingProjection{}
	opts := Options{OutputDirectory: t.TempDir(), ExcludeTypes: []string{"Line"}}

	result, err := Run(sampleDocument(), p, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Order", "Status"}, p.schema.types)
	assert.Empty(t, result.Skipped)

	p = &recordingProjection{}
	opts = Options{OutputDirectory: t.TempDir(), IncludeTypes: []string{"Status"}}

	_, err = Run(sampleDocument(), p, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Status"}, p.schema.types)
}

func TestShouldIncludeType(t *testing.T) {
	assert.True(t, Options{}.ShouldIncludeType("Any"))
	assert.False(t, Options{ExcludeTypes: []string{"Any"}}.ShouldIncludeType("Any"))
	assert.False(t, Options{IncludeTypes: []string{"Other"}}.ShouldIncludeType("Any"))
	assert.False(t, Options{IncludeTypes: []string{"Any"}, ExcludeTypes: []string{"Any"}}.ShouldIncludeType("Any"))
}
