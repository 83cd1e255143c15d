//go:build ignore

// Command gen_demo_fixture generates the embedded demo analysis fixture.
//
// Usage:
//
//	go run ./scripts/gen_demo_fixture.go -source capture.json
//
// It reads an analysis document captured from a real server response,
// replaces assignee names with stable pseudonyms everywhere they occur,
// truncates long strings and arrays, checks that the result still decodes,
// and writes it to `internal/demo/fixtures/analysis.v1.json`.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pablasso/meetmind/internal/analysis"
)

var pseudonyms = []string{"Dana", "Ravi", "Mei", "Tomas", "Ines", "Kofi", "Lena", "Omar"}

type redactor struct {
	names        map[string]string
	maxItems     int
	maxTextBytes int
}

// collectAssignees assigns a pseudonym to every distinct assignee, in order
// of first appearance.
func (r *redactor) collectAssignees(doc map[string]any) {
	items, _ := doc["action_items"].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := item["assignee"].(string)
		name = strings.TrimSpace(name)
		if name == "" || strings.EqualFold(name, "unassigned") {
			continue
		}
		if _, seen := r.names[name]; seen {
			continue
		}
		alias := fmt.Sprintf("Person %d", len(r.names)+1)
		if len(r.names) < len(pseudonyms) {
			alias = pseudonyms[len(r.names)]
		}
		r.names[name] = alias
	}
}

func (r *redactor) redact(v any) any {
	switch val := v.(type) {
	case string:
		return truncateUTF8(r.replaceNames(val), r.maxTextBytes)
	case []any:
		if r.maxItems > 0 && len(val) > r.maxItems {
			val = val[:r.maxItems]
		}
		for i := range val {
			val[i] = r.redact(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = r.redact(val[k])
		}
		return val
	default:
		return v
	}
}

func (r *redactor) replaceNames(s string) string {
	// Longest names first so "Ana Maria" wins over "Ana".
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		s = strings.ReplaceAll(s, name, r.names[name])
	}
	return s
}

func truncateUTF8(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	if maxBytes <= 3 {
		return s[:maxBytes]
	}
	target := maxBytes - 3
	i := 0
	for i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		if i+size > target {
			break
		}
		i += size
	}
	return s[:i] + "..."
}

func main() {
	var (
		sourcePath   string
		outPath      string
		maxItems     int
		maxTextBytes int
	)

	flag.StringVar(&sourcePath, "source", "", "Captured analysis JSON (required)")
	flag.StringVar(&outPath, "out", "internal/demo/fixtures/analysis.v1.json", "Output fixture path")
	flag.IntVar(&maxItems, "max-items", 8, "Max entries kept per array (0 = all)")
	flag.IntVar(&maxTextBytes, "max-text-bytes", 1024, "Max bytes per string value (0 = unlimited)")
	flag.Parse()

	if sourcePath == "" {
		fmt.Fprintln(os.Stderr, "-source is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read source: %v\n", err)
		os.Exit(1)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "source is not a JSON object: %v\n", err)
		os.Exit(1)
	}

	r := &redactor{
		names:        make(map[string]string),
		maxItems:     maxItems,
		maxTextBytes: maxTextBytes,
	}
	r.collectAssignees(doc)
	r.redact(doc)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal fixture: %v\n", err)
		os.Exit(1)
	}

	if _, err := analysis.Decode(data); err != nil {
		fmt.Fprintf(os.Stderr, "redacted fixture no longer decodes: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d bytes, %d names redacted)\n", outPath, len(data), len(r.names))
}
