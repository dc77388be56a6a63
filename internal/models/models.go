package models

// Kind identifies which variant of a JSON value is populated.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. Only the fields matching Kind are meaningful.
// Object members keep the order they had in the source document.
type Value struct {
	Kind     Kind
	Bool     bool
	Number   string // literal text, e.g. "30" or "3.14"
	String   string
	Members  []Member
	Elements []Value
}

// Member is one key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Document holds the root of a parsed JSON input.
type Document struct {
	Root Value
}

// RootIsArray reports whether the document root is a JSON array.
func (d Document) RootIsArray() bool {
	return d.Root.Kind == Array
}

// Constructors, mostly used by tests.

func NullValue() Value { return Value{Kind: Null} }

func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }

func NumberValue(n string) Value { return Value{Kind: Number, Number: n} }

func StringValue(s string) Value { return Value{Kind: String, String: s} }

func ObjectValue(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{Kind: Object, Members: members}
}

func ArrayValue(elements ...Value) Value {
	if elements == nil {
		elements = []Value{}
	}
	return Value{Kind: Array, Elements: elements}
}

// Field is shorthand for building an object Member.
func Field(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Get returns the value stored under key and whether it exists.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the object keys in document order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}
