package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Kind is the JSON type of a Node.
type Kind int

// Kind values.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Node is a JSON value that remembers object key order.
type Node struct {
	Kind Kind

	// Scalar holds the string value, the raw number literal, or "true"/"false".
	Scalar string

	Items  []*Node
	Keys   []string
	Fields map[string]*Node
}

// Field returns the member named key, or nil.
func (n *Node) Field(key string) *Node {
	if n == nil || n.Kind != Object {
		return nil
	}
	return n.Fields[key]
}

// IsComposite reports whether n is an object or an array.
func (n *Node) IsComposite() bool {
	return n != nil && (n.Kind == Object || n.Kind == Array)
}

// Truthy reports whether n would be considered set: non-empty strings,
// non-zero numbers, true, and any object or array.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case String:
		return n.Scalar != ""
	case Number:
		return strings.Trim(n.Scalar, "-0.eE+") != ""
	case Bool:
		return n.Scalar == "true"
	case Array, Object:
		return true
	default:
		return false
	}
}

// Text renders a scalar the way string interpolation would.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case String, Number, Bool:
		return n.Scalar
	case Null:
		return "null"
	default:
		return ""
	}
}

// ParseNode decodes a single JSON value preserving object key order.
// A repeated key keeps its first position and takes the last value.
func ParseNode(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return n, nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &Node{Kind: Object, Fields: make(map[string]*Node)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.New("object key is not a string")
				}
				child, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				if _, exists := n.Fields[key]; !exists {
					n.Keys = append(n.Keys, key)
				}
				n.Fields[key] = child
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &Node{Kind: Array}
			for dec.More() {
				child, err := decodeNode(dec)
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
		return nil, errors.New("unexpected delimiter")
	case string:
		return &Node{Kind: String, Scalar: v}, nil
	case json.Number:
		return &Node{Kind: Number, Scalar: v.String()}, nil
	case bool:
		if v {
			return &Node{Kind: Bool, Scalar: "true"}, nil
		}
		return &Node{Kind: Bool, Scalar: "false"}, nil
	case nil:
		return &Node{Kind: Null}, nil
	}
	return nil, errors.New("unexpected token")
}

// Indent serializes n with two-space indentation, keys in document order,
// and without HTML escaping.
func (n *Node) Indent() string {
	var b strings.Builder
	writeNode(&b, n, "")
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, indent string) {
	if n == nil {
		b.WriteString("null")
		return
	}
	switch n.Kind {
	case Null:
		b.WriteString("null")
	case Bool, Number:
		b.WriteString(n.Scalar)
	case String:
		writeString(b, n.Scalar)
	case Array:
		if len(n.Items) == 0 {
			b.WriteString("[]")
			return
		}
		inner := indent + "  "
		b.WriteString("[\n")
		for i, item := range n.Items {
			b.WriteString(inner)
			writeNode(b, item, inner)
			if i < len(n.Items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte(']')
	case Object:
		if len(n.Keys) == 0 {
			b.WriteString("{}")
			return
		}
		inner := indent + "  "
		b.WriteString("{\n")
		for i, key := range n.Keys {
			b.WriteString(inner)
			writeString(b, key)
			b.WriteString(": ")
			writeNode(b, n.Fields[key], inner)
			if i < len(n.Keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte('}')
	}
}

func writeString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
