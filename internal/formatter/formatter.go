package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcncl/jsoncs/internal/config"
)

const indentUnit = "    "

// Formatter tidies generated declarations and assembles them into a C#
// source file.
type Formatter struct {
	output config.OutputConfig
}

// NewFormatter creates a Formatter that only normalizes whitespace.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NewFormatterWithConfig creates a Formatter that also emits the header,
// using directives and namespace from the output configuration.
func NewFormatterWithConfig(output config.OutputConfig) *Formatter {
	return &Formatter{output: output}
}

// Format returns code with trailing whitespace removed, blank line runs
// collapsed, and the configured file preamble and namespace applied.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	if err := checkBraces(code); err != nil {
		return "", fmt.Errorf("failed to parse C# code: %w", err)
	}

	body := normalizeLines(code)

	var b strings.Builder
	if header := strings.TrimSpace(f.output.FileHeader); header != "" {
		for _, line := range strings.Split(header, "\n") {
			b.WriteString(strings.TrimRight("// "+strings.TrimSpace(line), " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if usings := f.formatUsings(); usings != "" {
		b.WriteString(usings)
		b.WriteString("\n")
	}

	if ns := strings.TrimSpace(f.output.Namespace); ns != "" {
		b.WriteString("namespace ")
		b.WriteString(ns)
		b.WriteString("\n{\n")
		b.WriteString(indentLines(body))
		b.WriteString("}\n")
	} else {
		b.WriteString(body)
	}

	return b.String(), nil
}

// formatUsings renders using directives with System namespaces first,
// each group sorted and deduplicated.
func (f *Formatter) formatUsings() string {
	seen := make(map[string]struct{})
	systemUsings := []string{}
	otherUsings := []string{}

	for _, u := range f.output.Usings {
		u = strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(u), "using ")), ";")
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}

		if u == "System" || strings.HasPrefix(u, "System.") {
			systemUsings = append(systemUsings, u)
		} else {
			otherUsings = append(otherUsings, u)
		}
	}

	sort.Strings(systemUsings)
	sort.Strings(otherUsings)

	var b strings.Builder
	for _, u := range append(systemUsings, otherUsings...) {
		b.WriteString("using ")
		b.WriteString(u)
		b.WriteString(";\n")
	}
	return b.String()
}

// normalizeLines trims trailing whitespace, drops leading and trailing blank
// lines, collapses runs of blank lines and ends the text with one newline.
func normalizeLines(code string) string {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	result := make([]string, 0, len(lines))

	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank = len(result) > 0
			continue
		}
		if blank {
			result = append(result, "")
			blank = false
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n") + "\n"
}

func indentLines(code string) string {
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indentUnit + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// checkBraces reports unbalanced braces outside string and char literals.
func checkBraces(code string) error {
	depth := 0
	line := 1
	var quote rune
	escaped := false

	for _, r := range code {
		if r == '\n' {
			line++
		}
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected '}' on line %d", line)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d unclosed '{'", depth)
	}
	return nil
}
