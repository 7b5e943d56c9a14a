// Package config provides configuration handling for ramlconv.
package config

import "ramlconv/internal/backend"

const (
	// DefaultXMLNamespace is the XML namespace used by every backend unless
	// overridden.
	DefaultXMLNamespace = "http://tempuri.org/"

	// DefaultCSharpNamespace is the namespace wrapping generated C# types.
	DefaultCSharpNamespace = "DataContract"

	// DefaultConfigFile is looked up in the working directory when no
	// --config flag is given.
	DefaultConfigFile = "ramlconv.yaml"
)

// DefaultBackends returns one disabled section per known backend.
func DefaultBackends() map[string]Backend {
	backends := make(map[string]Backend, len(backend.Kinds))
	for _, kind := range backend.Kinds {
		backends[string(kind)] = Backend{}
	}

	csharp := backends[string(backend.CSharp)]
	csharp.Namespace = DefaultCSharpNamespace
	backends[string(backend.CSharp)] = csharp

	return backends
}
