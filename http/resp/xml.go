package resp

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	xmlDeclaration = `<?xml version="1.0"?>`
	xmlRoot        = "data"
	xmlIndexPrefix = "node-"
)

var (
	decimalKey = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)
	radixKey   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// XMLLines renders b wrapped under a <data> element, preceded by the XML declaration.
//
// Each key of a mapping becomes an element of the same name;
// numeric keys and the positions in a sequence become node-<index> elements.
// Strings, numbers and booleans become character data; nil becomes an empty element.
// Keys of Go maps are rendered in sorted order.
func XMLLines(b *Buffer) ([]string, error) {
	var sb strings.Builder
	if err := writeElement(&sb, xmlRoot, b); err != nil {
		return nil, err
	}

	return []string{xmlDeclaration, sb.String()}, nil
}

func writeElement(sb *strings.Builder, name string, v any) error {
	sb.WriteString("<" + name + ">")
	if err := writeValue(sb, v); err != nil {
		return err
	}
	sb.WriteString("</" + name + ">")
	return nil
}

func writeValue(sb *strings.Builder, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case *Buffer:
		return t.each(func(appID string, handlers []string, content map[string]any) error {
			return writeElement(sb, elementName(appID), orderedHandlers{handlers, content})
		})
	case orderedHandlers:
		for _, h := range t.order {
			if err := writeElement(sb, elementName(h), t.content[h]); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if err := writeElement(sb, elementName(k), t[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range t {
			if err := writeElement(sb, xmlIndexPrefix+strconv.Itoa(i), item); err != nil {
				return err
			}
		}
		return nil
	case string:
		return xml.EscapeText(sb, []byte(t))
	case json.Number:
		sb.WriteString(t.String())
		return nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		sb.WriteString(fmt.Sprint(t))
		return nil
	}

	generic, err := toGeneric(v)
	if err != nil {
		return err
	}
	return writeValue(sb, generic)
}

// orderedHandlers is one app of a Buffer.
type orderedHandlers struct {
	order   []string
	content map[string]any
}

// toGeneric converts v into the maps, slices and scalars encoding/json decodes into.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cannot render %T as xml: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("cannot render %T as xml: %w", v, err)
	}
	return generic, nil
}

// elementName prefixes keys that read as numbers, since those cannot name an element.
func elementName(key string) string {
	if isIndex(key) {
		return xmlIndexPrefix + key
	}
	return key
}

// isIndex reports whether key reads as a number: blank, decimal, Infinity
// or an unsigned hex, octal or binary literal.
func isIndex(key string) bool {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return true
	}

	return decimalKey.MatchString(trimmed) || radixKey.MatchString(trimmed)
}
