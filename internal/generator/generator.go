package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mcncl/jsoncs/internal/analyzer"
	"github.com/mcncl/jsoncs/internal/config"
	"github.com/mcncl/jsoncs/internal/logger"
	"github.com/mcncl/jsoncs/internal/models"
	"github.com/mcncl/jsoncs/internal/naming"
)

const (
	indentUnit = "    "

	// ItemsMember is the collection property of every class generated for
	// an array.
	ItemsMember = "Items"
	// ItemSuffix is appended to an array class name to name its element class.
	ItemSuffix = "Item"
)

// Generator emits C# class declarations describing the shape of a JSON
// value. It holds no per-call state and is safe for concurrent use.
type Generator struct {
	types *analyzer.TypeMapper
	names naming.Normalizer
	log   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTypeMapper replaces the default C# type table.
func WithTypeMapper(m *analyzer.TypeMapper) Option {
	return func(g *Generator) { g.types = m }
}

// WithNormalizer replaces the default identifier normalizer.
func WithNormalizer(n naming.Normalizer) Option {
	return func(g *Generator) { g.names = n }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator creates a new Generator instance
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{types: analyzer.NewTypeMapper()}
	for _, opt := range opts {
		opt(g)
	}
	g.log = logger.OrNop(g.log)
	return g
}

// NewGeneratorWithConfig creates a Generator from the type table and naming
// options in cfg.
func NewGeneratorWithConfig(cfg *config.Config, l *zap.Logger) *Generator {
	return NewGenerator(
		WithTypeMapper(analyzer.NewTypeMapperWithConfig(cfg.Types)),
		WithNormalizer(naming.Normalizer{PascalCaseMembers: cfg.Naming.PascalCaseMembers}),
		WithLogger(l),
	)
}

// Generate returns the declarations for value, using nameSeed as the class
// name for objects and arrays or as the property name for primitives.
// The only error is a seed that normalizes to an empty identifier.
func (g *Generator) Generate(value models.Value, nameSeed string) (string, error) {
	code, err := g.generate(value, nameSeed, "$")
	if err != nil {
		return "", err
	}
	return code + "\n", nil
}

func (g *Generator) generate(value models.Value, seed, path string) (string, error) {
	switch value.Kind {
	case models.Object:
		return g.object(value, seed, path)
	case models.Array:
		return g.array(value, seed, path)
	default:
		return g.member(g.types.TypeOf(value.Kind), seed, path)
	}
}

func (g *Generator) member(typeName, seed, path string) (string, error) {
	name, err := g.names.MemberName(seed)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return memberLine(typeName, name), nil
}

func (g *Generator) className(seed, path string) (string, error) {
	name, err := g.names.TypeName(seed)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return name, nil
}

// object emits a class with one declaration per member, in document order.
func (g *Generator) object(value models.Value, seed, path string) (string, error) {
	name, err := g.className(seed, path)
	if err != nil {
		return "", err
	}

	body := make([]string, 0, len(value.Members))
	for _, m := range value.Members {
		code, err := g.generate(m.Value, m.Key, memberPath(path, m.Key))
		if err != nil {
			return "", err
		}
		body = append(body, code)
	}

	g.log.Debug("emitting class",
		zap.String(logger.FieldSeed, seed),
		zap.String(logger.FieldClass, name),
		zap.Int(logger.FieldMembers, len(body)),
	)
	return classBlock(name, body), nil
}

// array emits a wrapper class with an Items collection. Only the first
// element is inspected.
func (g *Generator) array(value models.Value, seed, path string) (string, error) {
	name, err := g.className(seed, path)
	if err != nil {
		return "", err
	}

	if len(value.Elements) == 0 {
		g.log.Debug("emitting untyped collection class",
			zap.String(logger.FieldSeed, seed),
			zap.String(logger.FieldClass, name),
		)
		return classBlock(name, []string{memberLine(g.types.UntypedList(), ItemsMember)}), nil
	}

	first := value.Elements[0]
	if first.Kind != models.Object {
		g.log.Debug("emitting collection class",
			zap.String(logger.FieldSeed, seed),
			zap.String(logger.FieldClass, name),
			zap.Stringer(logger.FieldKind, first.Kind),
		)
		return classBlock(name, []string{memberLine(g.types.ListOf(g.types.TypeOf(first.Kind)), ItemsMember)}), nil
	}

	itemName := name + ItemSuffix
	itemPath := path + "[0]"

	// Item members are mapped flat; nested objects and arrays become the
	// untyped object type instead of nested classes.
	itemBody := make([]string, 0, len(first.Members))
	for _, m := range first.Members {
		code, err := g.member(g.types.TypeOf(m.Value.Kind), m.Key, memberPath(itemPath, m.Key))
		if err != nil {
			return "", err
		}
		itemBody = append(itemBody, code)
	}

	listType := g.types.ListOf(itemName)
	constructor := fmt.Sprintf("public %s()\n{\n%s%s = new %s();\n}", name, indentUnit, ItemsMember, listType)

	g.log.Debug("emitting collection class",
		zap.String(logger.FieldSeed, seed),
		zap.String(logger.FieldClass, name),
		zap.String("item_class", itemName),
		zap.Int(logger.FieldMembers, len(itemBody)),
	)
	return classBlock(name, []string{
		constructor,
		"",
		memberLine(listType, ItemsMember),
		"",
		classBlock(itemName, itemBody),
	}), nil
}

func memberLine(typeName, name string) string {
	return fmt.Sprintf("public %s %s { get; set; }", typeName, name)
}

// classBlock wraps declarations in a class body, indenting each of them one
// level. An empty string in body becomes a blank line.
func classBlock(name string, body []string) string {
	var b strings.Builder
	b.WriteString("public class ")
	b.WriteString(name)
	b.WriteString("\n{\n")
	for _, decl := range body {
		b.WriteString(indent(decl))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func indent(code string) string {
	if code == "" {
		return ""
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indentUnit + line
		}
	}
	return strings.Join(lines, "\n")
}

func memberPath(parent, key string) string {
	return fmt.Sprintf("%s[%q]", parent, key)
}
