package generator

import (
	"io/fs"
	"path"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/cockroachdb/errors"
)

// LoadTemplate parses the named template from fsys with the shared
// function map. Backends embed their templates and pass the embed.FS here.
func LoadTemplate(fsys fs.FS, name string, opts Options) (*template.Template, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(TemplateFuncs(opts)).ParseFS(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing template %s", name)
	}
	return tmpl, nil
}

// TemplateFuncs returns the helpers available to backend templates.
func TemplateFuncs(opts Options) template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,

		// Comment formatting; empty unless descriptions are enabled
		"docComment": func(text, indent string) string {
			return formatDocComment(opts.Description(text), indent)
		},
		"summary": func(text, indent string) string {
			return formatSummary(opts.Description(text), indent)
		},

		// Layout
		"indent": func(level int) string {
			return strings.Repeat(opts.Indent("\t"), level)
		},
		"notLast": func(i, length int) bool { return i < length-1 },
	}
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Identifier turns s into a valid C-family identifier. Invalid runes become
// underscores and a leading digit is prefixed with one.
func Identifier(s string) string {
	if s == "" {
		return "_"
	}
	runes := []rune(s)
	for i, r := range runes {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			runes[i] = '_'
		}
	}
	if unicode.IsDigit(runes[0]) {
		return "_" + string(runes)
	}
	return string(runes)
}

func commentLines(comment string) []string {
	lines := strings.Split(strings.TrimSpace(comment), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// formatDocComment formats a /** */ block, each line prefixed with indent.
func formatDocComment(comment, indent string) string {
	if comment == "" {
		return ""
	}
	lines := commentLines(comment)
	if len(lines) == 1 {
		return indent + "/** " + lines[0] + " */"
	}
	result := []string{indent + "/**"}
	for _, line := range lines {
		result = append(result, indent+" * "+line)
	}
	result = append(result, indent+" */")
	return strings.Join(result, "\n")
}

// formatSummary formats an XML documentation comment.
func formatSummary(comment, indent string) string {
	if comment == "" {
		return ""
	}
	result := []string{indent + "/// <summary>"}
	for _, line := range commentLines(comment) {
		result = append(result, indent+"/// "+line)
	}
	result = append(result, indent+"/// </summary>")
	return strings.Join(result, "\n")
}
