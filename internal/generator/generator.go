// Package generator drives a backend projection over a parsed type model and
// writes the resulting artifacts.
package generator

import (
	"io"
	"strings"

	"ramlconv/internal/logger"
	"ramlconv/internal/model"
)

// Options configures a single backend run.
type Options struct {
	GenerateDescriptions bool   // Emit type and property descriptions
	XMLNamespace         string // XML namespace for schema and data-contract output
	TargetNamespace      string // Code namespace (C#)
	OutputDirectory      string // Directory receiving the artifacts
	IndentSize           *int   // Spaces per indent level; nil selects the backend default
	DisableLint          bool   // Prepend a lint-disable marker to generated code

	TypeMappings map[string]string // Type string overrides (e.g., "datetime" -> "DateTime")
	IncludeTypes []string          // When set, only these types are projected
	ExcludeTypes []string          // Types never projected
}

// Indent returns one indentation unit: IndentSize spaces when set, otherwise def.
func (o Options) Indent(def string) string {
	if o.IndentSize != nil && *o.IndentSize > 0 {
		return strings.Repeat(" ", *o.IndentSize)
	}
	return def
}

// Description returns text when descriptions are enabled and "" otherwise.
func (o Options) Description(text string) string {
	if !o.GenerateDescriptions {
		return ""
	}
	return text
}

// ShouldIncludeType checks if a type should be projected based on the
// include and exclude lists.
func (o Options) ShouldIncludeType(name string) bool {
	// Check include list (if specified, type must be in it)
	if len(o.IncludeTypes) > 0 {
		found := false
		for _, t := range o.IncludeTypes {
			if t == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Check exclude list
	for _, t := range o.ExcludeTypes {
		if t == name {
			return false
		}
	}

	return true
}

// Projection maps canonical types onto one backend. S is the in-progress
// schema container (usually a pointer) and T one projected type.
type Projection[S, T any] interface {
	// Language returns the backend name (e.g., "xsd", "typescript")
	Language() string

	// FileExtension returns the extension of the main artifact (e.g., "xsd", "ts")
	FileExtension() string

	// Initialize creates an empty schema container for doc.
	Initialize(doc *model.Document, opts Options) S

	// ProjectType maps one canonical type. A false result filters the type out.
	ProjectType(doc *model.Document, t model.Type, opts Options) (T, bool, error)

	// Accumulate appends a projected type to the schema.
	Accumulate(schema S, projected T)

	// Finalize runs after every type has been accumulated.
	Finalize(schema S, opts Options)

	// Write serializes the schema.
	Write(w io.Writer, schema S, opts Options) error
}

// RootEmitter is implemented by projections that produce an auxiliary
// artifact for each root type.
type RootEmitter interface {
	RootArtifact(doc *model.Document, t model.Type, opts Options) (Artifact, error)
}

// ExternalReferencer is implemented by projections that turn the alias
// table into import or include directives.
type ExternalReferencer[S any] interface {
	AddExternalReferences(schema S, doc *model.Document, opts Options)
}

// Result describes one completed (document, backend) run.
type Result struct {
	Backend   string   // Backend language
	Document  string   // Source document path
	Artifacts []string // Written files, main artifact last
	Types     int      // Number of accumulated types
	Skipped   []string // Types dropped because their projection failed
}

// ArtifactName returns the main artifact file name for a document.
func ArtifactName(doc *model.Document, ext string) string {
	return model.ChangeExtension(doc.Path, ext)
}

// Run converts doc with projection p:
//
//	Initialize -> {ProjectType -> Accumulate}* -> Finalize
//	  -> root artifacts -> external references -> write
//
// A projection error for one type is logged and the type is skipped.
// Write failures are returned marked with ErrArtifactWrite.
func Run[S, T any](doc *model.Document, p Projection[S, T], opts Options) (*Result, error) {
	log := logger.With("document", doc.Path, "backend", p.Language())

	result := &Result{Backend: p.Language(), Document: doc.Path}
	schema := p.Initialize(doc, opts)

	var roots []model.Type
	for _, t := range doc.Types {
		if !opts.ShouldIncludeType(t.Name) {
			log.Debugw("type excluded by configuration", "type", t.Name)
			continue
		}

		projected, ok, err := p.ProjectType(doc, t, opts)
		if err != nil {
			log.Warnw("skipping type", "type", t.Name, "error", err)
			result.Skipped = append(result.Skipped, t.Name)
			continue
		}
		if !ok {
			log.Debugw("type filtered by backend", "type", t.Name)
			continue
		}

		p.Accumulate(schema, projected)
		result.Types++

		if t.IsRootType {
			roots = append(roots, t)
		}
	}

	p.Finalize(schema, opts)

	if emitter, ok := any(p).(RootEmitter); ok {
		for _, t := range roots {
			artifact, err := emitter.RootArtifact(doc, t, opts)
			if err != nil {
				log.Warnw("skipping root artifact", "type", t.Name, "error", err)
				continue
			}
			path, err := WriteArtifact(opts.OutputDirectory, artifact)
			if err != nil {
				return result, err
			}
			result.Artifacts = append(result.Artifacts, path)
		}
	}

	if len(doc.Uses) > 0 {
		if referencer, ok := any(p).(ExternalReferencer[S]); ok {
			referencer.AddExternalReferences(schema, doc, opts)
		}
	}

	path, err := WriteArtifact(opts.OutputDirectory, Artifact{
		Name: ArtifactName(doc, p.FileExtension()),
		Render: func(w io.Writer) error {
			return p.Write(w, schema, opts)
		},
	})
	if err != nil {
		return result, err
	}
	result.Artifacts = append(result.Artifacts, path)

	log.Infow("generated", "types", result.Types, "artifacts", len(result.Artifacts))
	return result, nil
}

// Backend is a projection with its type parameters erased, so projections
// of different schema types can share a registry.
type Backend interface {
	Language() string
	FileExtension() string
	Run(doc *model.Document, opts Options) (*Result, error)
}

// Erase wraps a projection as a Backend.
func Erase[S, T any](p Projection[S, T]) Backend {
	return erased[S, T]{p: p}
}

type erased[S, T any] struct {
	p Projection[S, T]
}

func (e erased[S, T]) Language() string      { return e.p.Language() }
func (e erased[S, T]) FileExtension() string { return e.p.FileExtension() }

func (e erased[S, T]) Run(doc *model.Document, opts Options) (*Result, error) {
	return Run(doc, e.p, opts)
}
