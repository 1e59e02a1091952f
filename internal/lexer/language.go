package lexer

import (
	"path/filepath"
	"slices"
	"strings"
)

// Language identifies a built-in pattern set.
type Language int

const (
	// Unrecognized is the language of any tag without a pattern set.
	Unrecognized Language = iota
	Python
	TypeScript
	JavaScript
	Bash
	C
	CPP
	CSharp
	Swift
	PHP
	SQL
	MonkeyC
	Rust
	Assembly
	JSON
	CSS
	HTML
	XML
	Dockerfile
	Makefile

	languageCount
)

var languageNames = [languageCount]string{
	Unrecognized: "unrecognized",
	Python:       "python",
	TypeScript:   "typescript",
	JavaScript:   "javascript",
	Bash:         "bash",
	C:            "c",
	CPP:          "c++",
	CSharp:       "c#",
	Swift:        "swift",
	PHP:          "php",
	SQL:          "sql",
	MonkeyC:      "monkey c",
	Rust:         "rust",
	Assembly:     "assembly",
	JSON:         "json",
	CSS:          "css",
	HTML:         "html",
	XML:          "xml",
	Dockerfile:   "dockerfile",
	Makefile:     "makefile",
}

// tags maps every accepted (lowercase) language tag to its pattern set.
var tags = map[string]Language{
	"python":     Python,
	"typescript": TypeScript,
	"javascript": JavaScript,
	"react":      JavaScript,
	"node":       JavaScript,
	"express":    JavaScript,
	"bash":       Bash,
	"shell":      Bash,
	"c":          C,
	"c++":        CPP,
	"c#":         CSharp,
	"swift":      Swift,
	"php":        PHP,
	"sql":        SQL,
	"monkey c":   MonkeyC,
	"rust":       Rust,
	"assembly":   Assembly,
	"json":       JSON,
	"css":        CSS,
	"html":       HTML,
	"xml":        XML,
	"dockerfile": Dockerfile,
	"makefile":   Makefile,
}

// String returns the canonical tag of the language.
func (l Language) String() string {
	if l < 0 || l >= languageCount {
		return languageNames[Unrecognized]
	}
	return languageNames[l]
}

// Known reports whether l has a pattern set.
func (l Language) Known() bool {
	return l > Unrecognized && l < languageCount
}

// Tags returns every tag that selects l, sorted, canonical tag first.
func (l Language) Tags() []string {
	if !l.Known() {
		return nil
	}
	out := []string{l.String()}
	for tag, lang := range tags {
		if lang == l && tag != l.String() {
			out = append(out, tag)
		}
	}
	slices.Sort(out[1:])
	return out
}

// ParseLanguage resolves a language tag case-insensitively.
// Tags without a pattern set resolve to Unrecognized.
func ParseLanguage(tag string) Language {
	if lang, ok := tags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return lang
	}
	return Unrecognized
}

// Languages returns every language with a pattern set, in declaration order.
func Languages() []Language {
	out := make([]Language, 0, languageCount-1)
	for l := Unrecognized + 1; l < languageCount; l++ {
		out = append(out, l)
	}
	return out
}

var extensions = map[string]Language{
	".py":         Python,
	".pyw":        Python,
	".ts":         TypeScript,
	".tsx":        TypeScript,
	".mts":        TypeScript,
	".js":         JavaScript,
	".jsx":        JavaScript,
	".mjs":        JavaScript,
	".cjs":        JavaScript,
	".sh":         Bash,
	".bash":       Bash,
	".zsh":        Bash,
	".c":          C,
	".h":          C,
	".cc":         CPP,
	".cpp":        CPP,
	".cxx":        CPP,
	".hpp":        CPP,
	".hh":         CPP,
	".cs":         CSharp,
	".swift":      Swift,
	".php":        PHP,
	".sql":        SQL,
	".mc":         MonkeyC,
	".rs":         Rust,
	".s":          Assembly,
	".asm":        Assembly,
	".json":       JSON,
	".css":        CSS,
	".html":       HTML,
	".htm":        HTML,
	".xml":        XML,
	".svg":        XML,
	".dockerfile": Dockerfile,
	".mk":         Makefile,
}

var basenames = map[string]Language{
	"dockerfile":    Dockerfile,
	"containerfile": Dockerfile,
	"makefile":      Makefile,
	"gnumakefile":   Makefile,
	"package.json":  JSON,
	"tsconfig.json": JSON,
	"composer.json": JSON,
	".bashrc":       Bash,
	".bash_profile": Bash,
	".zshrc":        Bash,
}

// LanguageForPath picks a language from a file name.
func LanguageForPath(path string) Language {
	return LanguageForPathWith(path, nil)
}

// LanguageForPathWith picks a language from a file name, consulting
// overrides (extension or basename → language tag) before the built-in
// tables. Override keys are matched case-insensitively.
func LanguageForPathWith(path string, overrides map[string]string) Language {
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	for key, tag := range overrides {
		if strings.ToLower(key) == base {
			return ParseLanguage(tag)
		}
	}
	if ext != "" {
		for key, tag := range overrides {
			if strings.ToLower(key) == ext {
				return ParseLanguage(tag)
			}
		}
	}

	if lang, ok := basenames[base]; ok {
		return lang
	}
	if lang, ok := extensions[ext]; ok {
		return lang
	}
	return Unrecognized
}
