package document

import "github.com/google/go-cmp/cmp"

// DeepCopy returns a recursive copy of a document tree. Scalars are shared;
// every Map and List is freshly allocated.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case Map:
		m := make(Map, len(val))
		for k, child := range val {
			m[k] = DeepCopy(child)
		}
		return m
	case List:
		l := make(List, len(val))
		for i, child := range val {
			l[i] = DeepCopy(child)
		}
		return l
	default:
		return v
	}
}

// CopyMap deep copies an object node.
func CopyMap(m Map) Map {
	if m == nil {
		return nil
	}
	return DeepCopy(m).(Map)
}

// Equal reports whether two document trees are structurally equal.
// Numeric values compare by value across int and float representations.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, numberComparer)
}

var numberComparer = cmp.FilterValues(func(x, y any) bool {
	_, okx := toFloat(x)
	_, oky := toFloat(y)
	return okx && oky
}, cmp.Comparer(func(x, y any) bool {
	fx, _ := toFloat(x)
	fy, _ := toFloat(y)
	return fx == fy
}))

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
