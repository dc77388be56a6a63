package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncs/internal/config"
)

const personClass = `public class Person
{
    public string name { get; set; }
}
`

func TestFormat_Empty(t *testing.T) {
	formatted, err := NewFormatter().Format("  \n ")
	require.NoError(t, err)
	assert.Equal(t, "", formatted)
}

func TestFormat_NormalizesWhitespace(t *testing.T) {
	input := "\n\npublic class Person   \n{\n    public string name { get; set; }\t\n\n\n\n    public double age { get; set; }\n}\n\n\n"

	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)

	expected := `public class Person
{
    public string name { get; set; }

    public double age { get; set; }
}
`
	assert.Equal(t, expected, formatted)
}

func TestFormat_CRLF(t *testing.T) {
	formatted, err := NewFormatter().Format("public class A\r\n{\r\n}\r\n")
	require.NoError(t, err)
	assert.Equal(t, "public class A\n{\n}\n", formatted)
}

func TestFormat_WithUsings(t *testing.T) {
	f := NewFormatterWithConfig(config.OutputConfig{
		Usings: []string{"Newtonsoft.Json", "System.Collections.Generic", "using System;", "System", ""},
	})

	formatted, err := f.Format(personClass)
	require.NoError(t, err)

	expected := `using System;
using System.Collections.Generic;
using Newtonsoft.Json;

public class Person
{
    public string name { get; set; }
}
`
	assert.Equal(t, expected, formatted)
}

func TestFormat_WithNamespaceAndHeader(t *testing.T) {
	f := NewFormatterWithConfig(config.OutputConfig{
		FileHeader: "Generated by jsoncs.\nDo not edit.",
		Usings:     []string{"System.Collections.Generic"},
		Namespace:  "Shop.Orders",
	})

	formatted, err := f.Format(personClass)
	require.NoError(t, err)

	expected := `// Generated by jsoncs.
// Do not edit.

using System.Collections.Generic;

namespace Shop.Orders
{
    public class Person
    {
        public string name { get; set; }
    }
}
`
	assert.Equal(t, expected, formatted)
}

func TestFormat_UnbalancedBraces(t *testing.T) {
	_, err := NewFormatter().Format("public class A\n{\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed")

	_, err = NewFormatter().Format("public class A\n}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected '}' on line 2")
}

func TestFormat_BracesInsideStrings(t *testing.T) {
	input := "public class A\n{\n    public string B = \"{\";\n    public char C = '}';\n}\n"
	formatted, err := NewFormatter().Format(input)
	require.NoError(t, err)
	assert.Equal(t, input, formatted)
}
