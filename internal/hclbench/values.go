package hclbench

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalAttr evaluates a tick attribute expression. Tick attributes are plain
// literals; there is no evaluation context to resolve references against.
func evalAttr(attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("attribute %q: %s", attr.Name, diags.Error())
	}
	return val, nil
}

// stringAttr evaluates an attribute expected to hold a vector literal such
// as "0b0110". Bare numbers are rejected: without a width they are ambiguous.
func stringAttr(attr *hcl.Attribute) (string, error) {
	val, err := evalAttr(attr)
	if err != nil {
		return "", err
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("attribute %q: vectors are written as strings like \"0b0110\", got %s",
			attr.Name, val.Type().FriendlyName())
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", fmt.Errorf("attribute %q: %w", attr.Name, err)
	}
	return s, nil
}

func boolAttr(attr *hcl.Attribute) (bool, error) {
	val, err := evalAttr(attr)
	if err != nil {
		return false, err
	}
	var b bool
	if err := gocty.FromCtyValue(val, &b); err != nil {
		return false, fmt.Errorf("attribute %q: %w", attr.Name, err)
	}
	return b, nil
}

func intAttr(attr *hcl.Attribute) (int, error) {
	val, err := evalAttr(attr)
	if err != nil {
		return 0, err
	}
	var i int
	if err := gocty.FromCtyValue(val, &i); err != nil {
		return 0, fmt.Errorf("attribute %q: %w", attr.Name, err)
	}
	return i, nil
}

func intListAttr(attr *hcl.Attribute) ([]int, error) {
	val, err := evalAttr(attr)
	if err != nil {
		return nil, err
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("attribute %q: want a list of numbers, got %s",
			attr.Name, val.Type().FriendlyName())
	}
	var out []int
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		var i int
		if err := gocty.FromCtyValue(ev, &i); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		out = append(out, i)
	}
	return out, nil
}
