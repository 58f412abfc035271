package render

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"isEmpty":        isEmpty,
		"title":          title,
		"date":           r.date,
		"stripNamespace": stripNamespace,
		"countProperty":  countProperty,
		"countProperty2": countProperty2,
		"queryProperty":  queryProperty,
		"queryProperty2": queryProperty2,
		"render":         r.Render,
		"filter":         r.filter,
		"list":           list,
		"indent":         indent,
	}
}

func list(items ...any) []any {
	return items
}

// indent returns two spaces per nesting level.
func indent(depth int) string {
	return strings.Repeat("  ", max(0, depth))
}

// isEmpty reports whether v is nil, an empty string or an empty collection.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// title upper-cases the first letter of s.
func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// date formats the current time with a Go layout string.
func (r *Renderer) date(layout string) string {
	return r.now().Format(layout)
}

// stripNamespace returns the last component of a qualified name. Separators
// inside template argument lists are ignored, so "a::Map<b::Key>" yields
// "Map<b::Key>".
func stripNamespace(name string) string {
	depth, last := 0, -1
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ':':
			if depth == 0 && i+1 < len(name) && name[i+1] == ':' {
				last = i + 2
				i++
			}
		}
	}
	if last < 0 {
		return name
	}
	return name[last:]
}

type match struct {
	key, value string
}

func (m match) ok(obj map[string]any) bool {
	v, found := obj[m.key]
	return found && fmt.Sprint(v) == m.value
}

func query(list any, matches ...match) []any {
	out := make([]any, 0)
	for _, obj := range objects(list) {
		matched := true
		for _, m := range matches {
			if !m.ok(obj) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, obj)
		}
	}
	return out
}

// countProperty counts the objects of list whose key equals value.
func countProperty(list any, key, value string) int {
	return len(query(list, match{key, value}))
}

// countProperty2 counts the objects of list matching both key/value pairs.
func countProperty2(list any, key0, value0, key1, value1 string) int {
	return len(query(list, match{key0, value0}, match{key1, value1}))
}

// queryProperty returns the objects of list whose key equals value.
func queryProperty(list any, key, value string) []any {
	return query(list, match{key, value})
}

// queryProperty2 returns the objects of list matching both key/value pairs.
func queryProperty2(list any, key0, value0, key1, value1 string) []any {
	return query(list, match{key0, value0}, match{key1, value1})
}

// filter returns the objects of list for which the boolean expression holds.
// Each object's keys are the variables of the expression, for example
// `kind == "function" && !static`.
func (r *Renderer) filter(list any, expression string) ([]any, error) {
	program, ok := r.programs[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("failed to compile filter %q: %w", expression, err)
		}
		r.programs[expression] = program
	}

	out := make([]any, 0)
	for _, obj := range objects(list) {
		res, err := expr.Run(program, obj)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate filter %q: %w", expression, err)
		}
		keep, isBool := res.(bool)
		if !isBool {
			return nil, fmt.Errorf("filter %q returned %T, expected bool", expression, res)
		}
		if keep {
			out = append(out, obj)
		}
	}
	return out, nil
}

// objects returns the elements of list that are string keyed maps.
func objects(list any) []map[string]any {
	switch l := list.(type) {
	case nil:
		return nil
	case []map[string]any:
		return l
	case []any:
		out := make([]map[string]any, 0, len(l))
		for _, item := range l {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}
