// Package parser builds the canonical type model from RAML type-library documents.
package parser

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"ramlconv/internal/logger"
	"ramlconv/internal/model"
)

// ErrDocumentStructure marks documents whose top level is not a mapping.
var ErrDocumentStructure = errors.New("invalid document structure")

// Top-level document keys.
const (
	keyUsage = "usage"
	keyUses  = "uses"
	keyTypes = "types"
)

// Parser parses RAML documents and extracts their type declarations.
type Parser struct {
	rootTypes map[string]bool
}

// New creates a new Parser. Types whose name exactly matches one of
// rootTypes are flagged as root types.
func New(rootTypes ...string) *Parser {
	roots := make(map[string]bool, len(rootTypes))
	for _, name := range rootTypes {
		roots[name] = true
	}
	return &Parser{rootTypes: roots}
}

// ParseFile parses a single RAML document and returns its type model.
func (p *Parser) ParseFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return p.ParseBytes(path, data)
}

// ParseBytes parses RAML content. path is recorded on the document and
// used to name output artifacts.
func (p *Parser) ParseBytes(path string, data []byte) (*model.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing %s", path), ErrDocumentStructure)
	}

	top, ok := fromYAML(&root).(Mapping)
	if !ok {
		return nil, errors.WithHint(
			errors.Wrapf(ErrDocumentStructure, "%s: top level is not a mapping", path),
			"a type library needs top-level usage, uses and types keys",
		)
	}

	doc := &model.Document{Path: path}
	doc.Usage, _ = top.String(keyUsage)
	doc.Uses = extractUses(top)

	if types, ok := top.Mapping(keyTypes); ok {
		doc.Types = p.extractTypes(path, types)
	}

	reportMissingAliases(doc)

	logger.Debugw("parsed document",
		"document", path,
		"types", len(doc.Types),
		"aliases", len(doc.Uses))

	return doc, nil
}

// extractUses reads the alias table in declaration order.
func extractUses(top Mapping) []model.Alias {
	uses, ok := top.Mapping(keyUses)
	if !ok {
		return nil
	}

	aliases := make([]model.Alias, 0, len(uses))
	for _, pair := range uses {
		s, ok := pair.Value.(Scalar)
		if !ok || s.Null {
			continue
		}
		aliases = append(aliases, model.Alias{Name: pair.Key, Path: s.Value})
	}
	return aliases
}

// extractTypes classifies every declaration in source order.
func (p *Parser) extractTypes(path string, types Mapping) []model.Type {
	result := make([]model.Type, 0, len(types))
	seen := make(map[string]bool, len(types))

	for _, decl := range types {
		if decl.Key == ReservedCollection {
			logger.Debugw("skipping reserved type", "document", path, "type", decl.Key)
			continue
		}
		if seen[decl.Key] {
			logger.Warnw("duplicate type declaration", "document", path, "type", decl.Key)
		}
		seen[decl.Key] = true

		t := Classify(decl.Key, decl.Value)
		t.IsRootType = p.rootTypes[t.Name]

		logger.Debugw("classified type",
			"document", path,
			"type", t.Name,
			"shape", t.Shape,
			"root", t.IsRootType)

		result = append(result, t)
	}

	return result
}

// reportMissingAliases logs references whose alias is not declared in uses.
// Backends fall back to the local name for them.
func reportMissingAliases(doc *model.Document) {
	check := func(typeName, ref string) {
		if ref == "" || model.IsPrimitive(ref) {
			return
		}
		r := model.Resolve(ref, doc.Uses)
		if r.Alias != "" && r.Origin == "" {
			logger.Debugw("missing alias target",
				"document", doc.Path,
				"type", typeName,
				"reference", ref,
				"alias", r.Alias)
		}
	}

	for _, t := range doc.Types {
		check(t.Name, t.ItemType)
		check(t.Name, t.BaseType)
		for _, prop := range t.Properties {
			check(t.Name, prop.Type)
		}
	}
}
