package shape

import (
	"fmt"
	"slices"
	"sort"
)

// A KeyframeSet is the ordered list of forms of one shape. Every form holds
// the same attribute keys.
type KeyframeSet struct {
	kind  Type
	forms []Form
}

// NewKeyframeSet creates a set with a single form built from partial.
// Attributes missing from partial take the type default, then the base
// default.
func NewKeyframeSet(t Type, partial Form) (*KeyframeSet, error) {
	first := make(Form)
	for _, attr := range RequiredAttrs {
		first[attr] = 0.0
	}
	first[AttrOpacity] = 1.0
	for attr, v := range t.Defaults() {
		n, ok := Number(v)
		if !ok {
			return nil, fmt.Errorf("%s default %q: %w", t.Name(), attr, ErrInvalidValue)
		}
		first[attr] = n
	}
	for _, a := range t.ExtraAttrs() {
		v, err := NormalizeValue(a.Default)
		if err != nil {
			return nil, fmt.Errorf("%s default %q: %w", t.Name(), a.Key, err)
		}
		first[a.Key] = v
	}

	s := &KeyframeSet{kind: t}
	f, err := s.Fill(partial, first)
	if err != nil {
		return nil, err
	}
	s.forms = []Form{f}
	return s, nil
}

// Type returns the shape type.
func (s *KeyframeSet) Type() Type { return s.kind }

// Len returns the number of forms.
func (s *KeyframeSet) Len() int { return len(s.forms) }

// Form returns a copy of form i.
func (s *KeyframeSet) Form(i int) Form { return s.forms[i].Clone() }

// Forms returns copies of all forms.
func (s *KeyframeSet) Forms() []Form {
	out := make([]Form, len(s.forms))
	for i, f := range s.forms {
		out[i] = f.Clone()
	}
	return out
}

// Keys lists the attribute keys shared by every form.
func (s *KeyframeSet) Keys() []string {
	keys := make([]string, 0, len(s.forms[0]))
	for k := range s.forms[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fill overlays the allowed values of partial on a copy of base. Keys that
// base does not hold are ignored.
func (s *KeyframeSet) Fill(partial Form, base Form) (Form, error) {
	out := base.Clone()
	for attr, v := range partial {
		if _, ok := base[attr]; !ok {
			continue
		}
		nv, err := s.accept(attr, v)
		if err != nil {
			return nil, err
		}
		out[attr] = nv
	}
	return out, nil
}

// Insert places f at index i. f must come from Fill.
func (s *KeyframeSet) Insert(i int, f Form) {
	s.forms = slices.Insert(s.forms, i, f)
}

// Remove deletes form i.
func (s *KeyframeSet) Remove(i int) {
	s.forms = slices.Delete(s.forms, i, i+1)
}

// Set stores v in attribute attr of form i and reports whether the stored
// value changed.
func (s *KeyframeSet) Set(i int, attr string, v interface{}) (bool, error) {
	old, ok := s.forms[i][attr]
	if !ok {
		return false, nil
	}
	nv, err := s.accept(attr, v)
	if err != nil {
		return false, err
	}
	if old == nv {
		return false, nil
	}
	s.forms[i][attr] = nv
	return true, nil
}

func (s *KeyframeSet) accept(attr string, v interface{}) (interface{}, error) {
	nv, err := NormalizeValue(v)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", attr, err)
	}
	if extra, ok := Extra(s.kind, attr); ok {
		accepted, ok := extra.Accept(nv)
		if !ok {
			return nil, fmt.Errorf("attribute %q value %v: %w", attr, v, ErrInvalidValue)
		}
		return accepted, nil
	}
	if _, ok := nv.(float64); !ok {
		return nil, fmt.Errorf("attribute %q must be numeric: %w", attr, ErrInvalidValue)
	}
	return nv, nil
}
