package langvalue

import "fmt"

// NewMap builds an empty, ordered Map expression.
func NewMap() Expr {
	return Expr{Kind: KMap}
}

// NewList builds a List expression from items.
func NewList(items []Expr) Expr {
	return Expr{Kind: KList, Items: items}
}

// MapGet looks up key by structural equality, returning (value, found).
func (e Expr) MapGet(key Expr) (Expr, bool) {
	kk, ok := key.Key()
	if !ok {
		return Expr{}, false
	}
	for i, k := range e.MapKeys {
		ik, ok := k.Key()
		if ok && ik == kk {
			return e.MapVals[i], true
		}
	}
	return Expr{}, false
}

// MapSet returns a new Map with key bound to value, overwriting any
// existing entry for an equal key and otherwise appending (the invariant
// "a Map never contains two entries with equal keys" holds by construction).
func (e Expr) MapSet(key, value Expr) Expr {
	kk, ok := key.Key()
	if !ok {
		// Only reached by a caller bug: the parser/evaluator never builds a
		// Map key from something other than String/Symbol/Path/Number/Bool.
		panic(fmt.Sprintf("langvalue: invalid map key kind %s", key.Kind))
	}
	out := Expr{Kind: KMap}
	replaced := false
	for i, k := range e.MapKeys {
		ik, _ := k.Key()
		if ik == kk {
			out.MapKeys = append(out.MapKeys, k)
			out.MapVals = append(out.MapVals, value)
			replaced = true
			continue
		}
		out.MapKeys = append(out.MapKeys, k)
		out.MapVals = append(out.MapVals, e.MapVals[i])
	}
	if !replaced {
		out.MapKeys = append(out.MapKeys, key)
		out.MapVals = append(out.MapVals, value)
	}
	return out
}

// MapHasKey reports whether key is already bound, by structural equality.
func (e Expr) MapHasKey(key Expr) bool {
	_, ok := e.MapGet(key)
	return ok
}

// Equals reports deep structural equality between two Exprs; Map entries
// are matched by key regardless of order. Map lookups (MapGet) compare keys
// through Key, not Equals.
func (e Expr) Equals(other Expr) bool {
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case KString, KSymbol, KPath:
		return e.Str == other.Str
	case KNumber:
		return NewNumKey(e.Num) == NewNumKey(other.Num)
	case KBoolean:
		return e.Num == other.Num
	case KList:
		if len(e.Items) != len(other.Items) {
			return false
		}
		for i := range e.Items {
			if !e.Items[i].Equals(other.Items[i]) {
				return false
			}
		}
		return true
	case KMap:
		if len(e.MapKeys) != len(other.MapKeys) {
			return false
		}
		for i, k := range e.MapKeys {
			v, ok := other.MapGet(k)
			if !ok || !e.MapVals[i].Equals(v) {
				return false
			}
		}
		return true
	case KGitHubRemote:
		if e.User != other.User || e.Repo != other.Repo {
			return false
		}
		if (e.Branch == nil) != (other.Branch == nil) {
			return false
		}
		return e.Branch == nil || *e.Branch == *other.Branch
	default:
		return false
	}
}
