package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/protodoc/format"
	"github.com/signadot/protodoc/ir"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	depth, indent int
	compact       bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w, by default as indented JSON followed by a
// newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		node = ir.Null()
	}
	if es.format == format.YAMLFormat {
		return encodeYAML(node, w, es)
	}
	buf := bytes.NewBuffer(nil)
	if err := encodeJSON(node, buf, es); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeJSON(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, buf, es)
	case ir.ArrayType:
		return encodeArray(node, buf, es)
	}
	s, err := jsonScalar(node)
	if err != nil {
		return fmt.Errorf("at %s: %w", node.Path(), err)
	}
	buf.WriteString(es.color(node.Type, ValueColor, s))
	return nil
}

func encodeObject(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	buf.WriteString(es.color(ir.ObjectType, SepColor, "{"))
	if len(node.Fields) == 0 {
		buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
		return nil
	}
	es.depth++
	for i, field := range node.Fields {
		if i > 0 {
			buf.WriteString(es.color(ir.ObjectType, SepColor, ","))
		}
		es.newline(buf)
		attr := FieldColor
		if isReserved(field) {
			attr = ReservedColor
		}
		buf.WriteString(es.color(ir.ObjectType, attr, quote(field)))
		buf.WriteString(es.color(ir.ObjectType, SepColor, ":"))
		if !es.compact {
			buf.WriteByte(' ')
		}
		if err := encodeJSON(node.Values[i], buf, es); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(buf)
	buf.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	return nil
}

func encodeArray(node *ir.Node, buf *bytes.Buffer, es *EncState) error {
	buf.WriteString(es.color(ir.ArrayType, SepColor, "["))
	if len(node.Values) == 0 {
		buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
		return nil
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			buf.WriteString(es.color(ir.ArrayType, SepColor, ","))
		}
		es.newline(buf)
		if err := encodeJSON(v, buf, es); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(buf)
	buf.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	return nil
}

func (es *EncState) newline(buf *bytes.Buffer) {
	if es.compact {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.depth*es.indent))
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func jsonScalar(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.IntType:
		return strconv.FormatInt(node.Int, 10), nil
	case ir.FloatType:
		if math.IsNaN(node.Float) || math.IsInf(node.Float, 0) {
			return "", fmt.Errorf("unsupported float value %v", node.Float)
		}
		return FormatFloat(node.Float), nil
	default:
		s, err := ScalarString(node)
		if err != nil {
			return "", err
		}
		return quote(s), nil
	}
}

// FormatFloat formats f so that it reads back as a float.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ScalarString returns the string form of string-like scalars: strings,
// uuids, dates, times and datetimes.
func ScalarString(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.StringType:
		return node.String, nil
	case ir.UUIDType:
		return node.UUID.String(), nil
	case ir.DateType:
		return node.Time.Format(time.DateOnly), nil
	case ir.TimeType:
		return node.Time.Format("15:04:05.999999999"), nil
	case ir.DateTimeType:
		return node.Time.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("%s is not a string-like scalar", node.Type)
	}
}

func quote(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// encoding a string cannot fail
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func isReserved(field string) bool {
	switch field {
	case ir.ExtendsKey, ir.PrototypeKey, ir.ItemsKey, ir.IDKey:
		return true
	}
	return false
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(es.indent), yaml.IndentSequence(true))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func toYAML(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.IntType:
		return node.Int, nil
	case ir.FloatType:
		return node.Float, nil
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, field := range node.Fields {
			v, err := toYAML(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: field, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			v, err := toYAML(elt)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	default:
		return ScalarString(node)
	}
}
