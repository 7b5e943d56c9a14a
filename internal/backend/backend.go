// Package backend holds the closed set of output backends.
package backend

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"ramlconv/internal/backend/csharp"
	"ramlconv/internal/backend/jsonschema"
	"ramlconv/internal/backend/typescript"
	"ramlconv/internal/backend/xsd"
	"ramlconv/internal/generator"
)

// Kind names a backend.
type Kind string

const (
	XSD        Kind = "xsd"
	JSONSchema Kind = "jsonschema"
	CSharp     Kind = "csharp"
	TypeScript Kind = "typescript"
)

// ErrUnknownBackend is returned for names outside the registry.
var ErrUnknownBackend = errors.New("unknown backend")

// Kinds lists every backend in run order.
var Kinds = []Kind{XSD, JSONSchema, CSharp, TypeScript}

var registry = map[Kind]func() generator.Backend{
	XSD:        func() generator.Backend { return generator.Erase[*xsd.Schema, interface{}](xsd.New()) },
	JSONSchema: func() generator.Backend { return generator.Erase[*jsonschema.Document, jsonschema.Definition](jsonschema.New()) },
	CSharp:     func() generator.Backend { return generator.Erase[*csharp.File, csharp.Type](csharp.New()) },
	TypeScript: func() generator.Backend { return generator.Erase[*typescript.Module, typescript.Type](typescript.New()) },
}

// New returns the backend registered under kind.
func New(kind Kind) (generator.Backend, error) {
	factory, ok := registry[kind]
	if !ok {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownBackend, "%q", string(kind)),
			"valid backends: %s", strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Parse validates a backend name.
func Parse(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := registry[kind]; !ok {
		return "", errors.WithHintf(
			errors.Wrapf(ErrUnknownBackend, "%q", name),
			"valid backends: %s", strings.Join(Names(), ", "))
	}
	return kind, nil
}

// Names returns the registered backend names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for kind := range registry {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}
