package glsl

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

var metaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var definePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var versionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type define struct {
	marker  string
	name    string
	value   string
	boolean bool
}

// A Template is shader source whose #define lines can be overridden.
// Defines without a value are switches, `// #define NAME` is a switch that is off.
type Template struct {
	Name        string
	source      string
	definitions map[string]define
	versionEnd  int
}

// Parse reads the `//meta:name` line and the #define lines of source.
func Parse(source string) *Template {
	name := "untitled"

	for _, match := range metaPattern.FindAllStringSubmatch(source, -1) {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}

	defineMatches := definePattern.FindAllStringSubmatch(source, -1)
	definitions := make(map[string]define, len(defineMatches))
	markers := make(map[string]string, len(defineMatches))
	for i, match := range defineMatches {
		value := strings.TrimSpace(match[3])
		marker := fmt.Sprintf("$def_%v$", i)
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		definitions[strings.ToLower(match[2])] = define{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		markers[match[0]] = marker
	}
	source = definePattern.ReplaceAllStringFunc(source, func(s string) string {
		return markers[s]
	})

	versionEnd := 0
	if loc := versionPattern.FindStringIndex(source); loc != nil {
		versionEnd = loc[1]
	}

	return &Template{
		Name:        name,
		source:      source,
		definitions: definitions,
		versionEnd:  versionEnd,
	}
}

// Expand returns the source with defs applied. Names are matched case
// insensitively. Switches are turned off by "false" and on by anything else.
// Names the source does not define are inserted after the #version line, in
// name order.
func (t *Template) Expand(defs map[string]string) string {
	source := t.source

	extra := []string{}
	for n, v := range defs {
		if def, ok := t.definitions[strings.ToLower(n)]; ok {
			source = strings.Replace(source, def.marker, def.line(v), 1)
		} else {
			extra = append(extra, fmt.Sprintf("\n#define %v %v", n, v))
		}
	}
	slices.Sort(extra)
	source = source[:t.versionEnd] + strings.Join(extra, "") + source[t.versionEnd:]

	for _, def := range t.definitions {
		source = strings.Replace(source, def.marker, def.line(def.value), 1)
	}
	return source
}

func (def define) line(value string) string {
	if !def.boolean {
		return fmt.Sprintf("#define %v %v", def.name, value)
	}
	sub := fmt.Sprintf("#define %v", def.name)
	if value == "false" {
		return "// " + sub
	}
	return sub
}

// Switches converts flags to Expand overrides.
func Switches(flags map[string]bool) map[string]string {
	defs := make(map[string]string, len(flags))
	for name, on := range flags {
		defs[name] = fmt.Sprint(on)
	}
	return defs
}
