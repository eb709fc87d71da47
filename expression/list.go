package expression

import "fmt"

// ListIndex resolves a 1-based, possibly negative CSS list index (as
// used by list.nth and map/list builtins) against n items. Negative
// indices count from the end, matching the teacher's List.Extract
// convention generalized to support `nth($list, -1)`.
func ListIndex(n, index int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("index out of range: list is empty")
	}
	if index < 0 {
		index = n + index + 1
	}
	if index < 1 || index > n {
		return 0, fmt.Errorf("index out of range: %d", index)
	}
	return index - 1, nil
}

// Nth returns the item at a 1-based (possibly negative) index.
func (l List) Nth(index int) (Value, error) {
	i, err := ListIndex(len(l.Items), index)
	if err != nil {
		return nil, err
	}
	return l.Items[i], nil
}

// AsList coerces any Value into list form for builtins that accept
// either a list or a bare scalar (§4.1: a non-list is a single-item
// list of itself).
func AsList(v Value) List {
	if l, ok := v.(List); ok {
		return l
	}
	if a, ok := v.(*ArgList); ok {
		return List{Items: a.Positional, Sep: CommaSeparator}
	}
	return List{Items: []Value{v}, Sep: SpaceSeparator}
}

// Append returns a new list with v appended, preserving separator and
// bracket metadata.
func (l List) Append(v Value) List {
	out := make([]Value, len(l.Items)+1)
	copy(out, l.Items)
	out[len(l.Items)] = v
	return List{Items: out, Sep: l.Sep, Bracketed: l.Bracketed}
}

// IndexOf returns the 1-based index of the first item equal to v, or 0
// if not present.
func (l List) IndexOf(v Value) int {
	for i, item := range l.Items {
		if ValuesEqual(item, v) {
			return i + 1
		}
	}
	return 0
}

// Zip interleaves multiple lists into a list of same-length sub-lists,
// truncating to the shortest input (sass:list.zip semantics).
func Zip(lists ...List) List {
	if len(lists) == 0 {
		return List{Sep: CommaSeparator}
	}
	shortest := len(lists[0].Items)
	for _, l := range lists[1:] {
		if len(l.Items) < shortest {
			shortest = len(l.Items)
		}
	}
	out := make([]Value, shortest)
	for i := 0; i < shortest; i++ {
		row := make([]Value, len(lists))
		for j, l := range lists {
			row[j] = l.Items[i]
		}
		out[i] = List{Items: row, Sep: SpaceSeparator}
	}
	return List{Items: out, Sep: CommaSeparator}
}
