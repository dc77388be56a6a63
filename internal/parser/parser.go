package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/mcncl/jsoncs/internal/config"
	"github.com/mcncl/jsoncs/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncs/internal/logger"
	"github.com/mcncl/jsoncs/internal/models"
)

// Option configures a parse call.
type Option func(*options)

type options struct {
	maxDepth int
	log      *zap.Logger
}

// WithMaxDepth limits how deeply objects and arrays may nest.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

func newOptions(opts []Option) options {
	o := options{maxDepth: config.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logger.OrNop(o.log)
	return o
}

// Parse reads exactly one JSON value from reader. Object members keep their
// document order; a repeated key keeps its first position and its last value.
func Parse(reader io.Reader, opts ...Option) (models.Document, error) {
	o := newOptions(opts)

	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if err := validate(data); err != nil {
		return models.Document{}, err
	}

	// The token stream does not check separators, so it only runs on input
	// that validate has accepted.
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // numbers keep their literal text

	p := &tokenParser{dec: decoder, maxDepth: o.maxDepth}

	tok, err := p.next()
	if err != nil {
		return models.Document{}, err
	}
	root, err := p.value(tok, 0)
	if err != nil {
		return models.Document{}, err
	}

	o.log.Debug("parsed JSON document",
		zap.Stringer(logger.FieldKind, root.Kind),
		zap.Int(logger.FieldDepth, p.deepest),
		zap.Int(logger.FieldSize, len(data)),
	)

	return models.Document{Root: root}, nil
}

// validate decodes data once to report syntax errors and trailing values.
func validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var rootValue interface{}
	if err := decoder.Decode(&rootValue); err != nil {
		return syntaxError(err)
	}

	// Check for trailing data after the first JSON value.
	offset := decoder.InputOffset()
	if offset < 0 || offset > int64(len(data)) {
		offset = int64(len(data))
	}
	rest := bytes.TrimSpace(data[offset:])
	if len(rest) == 0 {
		return nil
	}
	var trailingValue interface{}
	if err := json.Unmarshal(rest, &trailingValue); err != nil {
		return errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
}

type tokenParser struct {
	dec      *json.Decoder
	maxDepth int
	deepest  int
}

// next reads a token inside a container, where EOF means truncated input.
func (p *tokenParser) next() (json.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, syntaxError(err)
	}
	return tok, nil
}

func (p *tokenParser) enter(depth int) error {
	if depth > p.maxDepth {
		return errors.NewParsingError(
			fmt.Sprintf("nesting exceeds the maximum depth of %d", p.maxDepth),
			errors.ErrTooDeep,
		)
	}
	if depth > p.deepest {
		p.deepest = depth
	}
	return nil
}

func (p *tokenParser) value(tok json.Token, depth int) (models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.object(depth + 1)
		case '[':
			return p.array(depth + 1)
		}
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected delimiter %q", rune(v)), errors.ErrInvalidJSON)
	case string:
		return models.StringValue(v), nil
	case json.Number:
		return models.NumberValue(string(v)), nil
	case float64:
		return models.NumberValue(fmt.Sprint(v)), nil
	case bool:
		return models.BoolValue(v), nil
	case nil:
		return models.NullValue(), nil
	default:
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected JSON token %T", tok), errors.ErrInvalidJSON)
	}
}

func (p *tokenParser) object(depth int) (models.Value, error) {
	if err := p.enter(depth); err != nil {
		return models.Value{}, err
	}

	obj := models.ObjectValue()
	index := make(map[string]int)
	for p.dec.More() {
		keyTok, err := p.next()
		if err != nil {
			return models.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError("object key must be a string", errors.ErrInvalidJSON)
		}

		tok, err := p.next()
		if err != nil {
			return models.Value{}, err
		}
		val, err := p.value(tok, depth)
		if err != nil {
			return models.Value{}, err
		}

		if i, seen := index[key]; seen {
			obj.Members[i].Value = val
			continue
		}
		index[key] = len(obj.Members)
		obj.Members = append(obj.Members, models.Field(key, val))
	}

	// Closing brace
	if _, err := p.next(); err != nil {
		return models.Value{}, err
	}
	return obj, nil
}

func (p *tokenParser) array(depth int) (models.Value, error) {
	if err := p.enter(depth); err != nil {
		return models.Value{}, err
	}

	arr := models.ArrayValue()
	for p.dec.More() {
		tok, err := p.next()
		if err != nil {
			return models.Value{}, err
		}
		val, err := p.value(tok, depth)
		if err != nil {
			return models.Value{}, err
		}
		arr.Elements = append(arr.Elements, val)
	}

	// Closing bracket
	if _, err := p.next(); err != nil {
		return models.Value{}, err
	}
	return arr, nil
}

func syntaxError(err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString), opts...)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts ...Option) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts...)
}
