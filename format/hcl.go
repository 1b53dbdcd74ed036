package format

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// hclCodec maps top-level attributes to keys. Blocks nest by type and then
// by each label, so `server "a" { port = 1 }` decodes to
// {server: {a: {port: 1}}}. Encoding writes every key as an attribute.
type hclCodec struct{}

func (hclCodec) Name() string { return "hcl" }

func (hclCodec) Decode(r io.Reader) (any, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrRead.Wrap(err)
	}

	f, diags := hclparse.NewParser().ParseHCL(src, "config.hcl")
	if diags.HasErrors() {
		return nil, ErrDecode.Wrap(diags)
	}

	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, ErrDecode.With(slog.String("body", fmt.Sprintf("%T", f.Body)))
	}

	return decodeBody(body)
}

func decodeBody(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, ErrDecode.Wrap(diags).With(slog.String("attribute", name))
		}

		n, err := fromCty(v)
		if err != nil {
			return nil, err
		}

		out[name] = n
	}

	for _, blk := range body.Blocks {
		inner, err := decodeBody(blk.Body)
		if err != nil {
			return nil, err
		}

		node := out
		for _, key := range append([]string{blk.Type}, blk.Labels...) {
			next, ok := node[key].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[key] = next
			}

			node = next
		}

		maps.Copy(node, inner)
	}

	return out, nil
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}

		f, _ := bf.Float64()

		return f, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, e := it.Element()

			n, err := fromCty(e)
			if err != nil {
				return nil, err
			}

			out[k.AsString()] = n
		}

		return out, nil

	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()

			n, err := fromCty(e)
			if err != nil {
				return nil, err
			}

			out = append(out, n)
		}

		return out, nil
	}

	return nil, ErrDecode.With(slog.String("type", ty.FriendlyName()))
}

func (hclCodec) Encode(w io.Writer, v any) error {
	tree, ok := v.(map[string]any)
	if !ok && v != nil {
		return ErrEncode.With(slog.String("type", fmt.Sprintf("%T", v)))
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for _, k := range slices.Sorted(maps.Keys(tree)) {
		if !hclsyntax.ValidIdentifier(k) {
			return ErrEncode.With(slog.String("attribute", k))
		}

		cv, err := toCty(tree[k])
		if err != nil {
			return ErrEncode.Wrap(err).With(slog.String("attribute", k))
		}

		body.SetAttributeValue(k, cv)
	}

	if _, err := f.WriteTo(w); err != nil {
		return ErrEncode.Wrap(err)
	}

	return nil
}

func toCty(x any) (cty.Value, error) {
	switch t := x.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int8:
		return cty.NumberIntVal(int64(t)), nil
	case int16:
		return cty.NumberIntVal(int64(t)), nil
	case int32:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint:
		return cty.NumberUIntVal(uint64(t)), nil
	case uint8:
		return cty.NumberUIntVal(uint64(t)), nil
	case uint16:
		return cty.NumberUIntVal(uint64(t)), nil
	case uint32:
		return cty.NumberUIntVal(uint64(t)), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case float32:
		return toCty(float64(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return cty.NilVal, fmt.Errorf("non-finite number %v", t)
		}

		return cty.NumberFloatVal(t), nil

	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}

		elems := make([]cty.Value, len(t))
		for i, e := range t {
			cv, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			elems[i] = cv
		}

		return cty.TupleVal(elems), nil

	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}

		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			cv, err := toCty(e)
			if err != nil {
				return cty.NilVal, err
			}

			attrs[k] = cv
		}

		return cty.ObjectVal(attrs), nil
	}

	return cty.NilVal, fmt.Errorf("unsupported type %T", x)
}
