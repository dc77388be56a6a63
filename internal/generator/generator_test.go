package generator

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsoncs/internal/analyzer"
	"github.com/mcncl/jsoncs/internal/config"
	"github.com/mcncl/jsoncs/internal/models"
	"github.com/mcncl/jsoncs/internal/naming"
)

func obj(members ...models.Member) models.Value { return models.ObjectValue(members...) }

func arr(elements ...models.Value) models.Value { return models.ArrayValue(elements...) }

func field(k string, v models.Value) models.Member { return models.Field(k, v) }

func num(n string) models.Value { return models.NumberValue(n) }

func str(s string) models.Value { return models.StringValue(s) }

func TestGenerate_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{name: "string", value: str("Bob"), expected: "public string name { get; set; }\n"},
		{name: "integer", value: num("30"), expected: "public double name { get; set; }\n"},
		{name: "float", value: num("3.5"), expected: "public double name { get; set; }\n"},
		{name: "true", value: models.BoolValue(true), expected: "public bool name { get; set; }\n"},
		{name: "false", value: models.BoolValue(false), expected: "public bool name { get; set; }\n"},
		{name: "null", value: models.NullValue(), expected: "public object name { get; set; }\n"},
	}

	g := NewGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := g.Generate(tt.value, "name")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestGenerate_SimpleObject(t *testing.T) {
	value := obj(
		field("name", str("Bob")),
		field("age", num("30")),
		field("tags", arr()),
	)

	code, err := NewGenerator().Generate(value, "Person")
	require.NoError(t, err)

	expected := `public class Person
{
    public string name { get; set; }
    public double age { get; set; }
    public class tags
    {
        public List<object> Items { get; set; }
    }
}
`
	assert.Equal(t, expected, code)
}

func TestGenerate_EmptyObject(t *testing.T) {
	code, err := NewGenerator().Generate(obj(), "Empty")
	require.NoError(t, err)
	assert.Equal(t, "public class Empty\n{\n}\n", code)
}

func TestGenerate_EmptyArray(t *testing.T) {
	code, err := NewGenerator().Generate(arr(), "Root")
	require.NoError(t, err)

	expected := `public class Root
{
    public List<object> Items { get; set; }
}
`
	assert.Equal(t, expected, code)
}

func TestGenerate_PrimitiveArraySamplesFirstElement(t *testing.T) {
	g := NewGenerator()

	code, err := g.Generate(arr(str("a"), str("b")), "Root")
	require.NoError(t, err)
	assert.Equal(t, "public class Root\n{\n    public List<string> Items { get; set; }\n}\n", code)

	// Later elements never change the element type.
	code, err = g.Generate(arr(num("1"), str("b"), models.BoolValue(true)), "Root")
	require.NoError(t, err)
	assert.Equal(t, "public class Root\n{\n    public List<double> Items { get; set; }\n}\n", code)

	code, err = g.Generate(arr(arr(num("1"))), "Matrix")
	require.NoError(t, err)
	assert.Equal(t, "public class Matrix\n{\n    public List<object> Items { get; set; }\n}\n", code)
}

func TestGenerate_ArrayOfObjects(t *testing.T) {
	value := arr(
		obj(field("a", num("1"))),
		obj(field("b", str("x"))),
	)

	code, err := NewGenerator().Generate(value, "Orders")
	require.NoError(t, err)

	expected := `public class Orders
{
    public Orders()
    {
        Items = new List<OrdersItem>();
    }

    public List<OrdersItem> Items { get; set; }

    public class OrdersItem
    {
        public double a { get; set; }
    }
}
`
	assert.Equal(t, expected, code)
	assert.NotContains(t, code, " b ")
}

func TestGenerate_ArrayItemMembersAreFlat(t *testing.T) {
	value := arr(obj(
		field("id", num("1")),
		field("tags", arr(str("x"))),
		field("meta", obj(field("x", num("1")))),
		field("note", models.NullValue()),
		field("line-no", num("2")),
	))

	code, err := NewGenerator().Generate(value, "lines")
	require.NoError(t, err)

	expected := `public class lines
{
    public lines()
    {
        Items = new List<linesItem>();
    }

    public List<linesItem> Items { get; set; }

    public class linesItem
    {
        public double id { get; set; }
        public object tags { get; set; }
        public object meta { get; set; }
        public object note { get; set; }
        public double lineno { get; set; }
    }
}
`
	assert.Equal(t, expected, code)
	assert.NotContains(t, code, "class meta")
}

func TestGenerate_NestedObjects(t *testing.T) {
	value := obj(
		field("id", num("7")),
		field("customer", obj(
			field("name", str("Ada")),
			field("address", obj(field("city", str("London")))),
		)),
		field("lines", arr(obj(field("sku", str("A-1")), field("qty", num("2"))))),
	)

	code, err := NewGenerator().Generate(value, "CreateOrderRequest")
	require.NoError(t, err)

	expected := `public class CreateOrderRequest
{
    public double id { get; set; }
    public class customer
    {
        public string name { get; set; }
        public class address
        {
            public string city { get; set; }
        }
    }
    public class lines
    {
        public lines()
        {
            Items = new List<linesItem>();
        }

        public List<linesItem> Items { get; set; }

        public class linesItem
        {
            public string sku { get; set; }
            public double qty { get; set; }
        }
    }
}
`
	assert.Equal(t, expected, code)
}

func TestGenerate_NormalizesNames(t *testing.T) {
	code, err := NewGenerator().Generate(obj(field("1bad name-x", models.BoolValue(true))), "Root")
	require.NoError(t, err)
	assert.Equal(t, "public class Root\n{\n    public bool Property1badnamex { get; set; }\n}\n", code)

	code, err = NewGenerator().Generate(obj(field("2nd level", obj())), "my order")
	require.NoError(t, err)
	assert.Equal(t, "public class myorder\n{\n    public class Class2ndlevel\n    {\n    }\n}\n", code)
}

func TestGenerate_PreservesDuplicateSiblingNames(t *testing.T) {
	// Colliding names are emitted as-is.
	value := obj(
		field("item", arr(obj(field("a", num("1"))))),
		field("it em", arr(obj(field("b", num("1"))))),
	)
	code, err := NewGenerator().Generate(value, "Root")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(code, "public class itemItem"))
}

func TestGenerate_EmptyIdentifier(t *testing.T) {
	g := NewGenerator()

	_, err := g.Generate(obj(field("ok", num("1")), field("--", num("1"))), "Root")
	require.Error(t, err)
	assert.ErrorIs(t, err, naming.ErrEmptyIdentifier)
	assert.Contains(t, err.Error(), `$["--"]`)

	_, err = g.Generate(obj(), "  ")
	assert.ErrorIs(t, err, naming.ErrEmptyIdentifier)

	_, err = g.Generate(arr(obj(field(" ", str("x")))), "Rows")
	require.Error(t, err)
	assert.ErrorIs(t, err, naming.ErrEmptyIdentifier)
	assert.Contains(t, err.Error(), `$[0][" "]`)

	_, err = g.Generate(str("x"), "-")
	assert.ErrorIs(t, err, naming.ErrEmptyIdentifier)
}

func TestGenerate_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Types.Float = "decimal"
	cfg.Types.List = "IList<%s>"
	cfg.Naming.PascalCaseMembers = true

	g := NewGeneratorWithConfig(cfg, nil)
	value := obj(
		field("unit_price", num("9.99")),
		field("line_items", arr(obj(field("product_id", num("1"))))),
	)

	code, err := g.Generate(value, "Cart")
	require.NoError(t, err)

	expected := `public class Cart
{
    public decimal UnitPrice { get; set; }
    public class line_items
    {
        public line_items()
        {
            Items = new IList<line_itemsItem>();
        }

        public IList<line_itemsItem> Items { get; set; }

        public class line_itemsItem
        {
            public decimal ProductId { get; set; }
        }
    }
}
`
	assert.Equal(t, expected, code)
}

func TestGenerate_WithTypeMapperOption(t *testing.T) {
	types := config.DefaultTypes()
	types.Object = "dynamic"
	g := NewGenerator(WithTypeMapper(analyzer.NewTypeMapperWithConfig(types)))

	code, err := g.Generate(arr(), "Bag")
	require.NoError(t, err)
	assert.Contains(t, code, "public List<dynamic> Items { get; set; }")
}

func TestGenerate_ConcurrentCalls(t *testing.T) {
	g := NewGenerator()
	value := obj(field("a", arr(obj(field("b", str("c"))))), field("d", num("1")))

	want, err := g.Generate(value, "Root")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = g.Generate(value, "Root")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
