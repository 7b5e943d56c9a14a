// ramlconv converts RAML type libraries into XML Schema, JSON Schema, C#
// data contracts and TypeScript classes.
package main

import (
	"os"

	"ramlconv/internal/logger"
)

func main() {
	code := 0
	if err := newRootCmd().Execute(); err != nil {
		reportError(err)
		code = 1
	}
	logger.Cleanup()
	os.Exit(code)
}
