package metanode

// Merge combines incoming into existing per spec §3's merge-marker
// semantics ("append/merge with the inherited value"): sequences
// concatenate, mappings union with incoming keys winning on conflict, and
// anything else (including the scalar-shorthand case, since any key whose
// schema declares "sequence" is always materialized as one) is treated as
// a one-element sequence and concatenated. existing may be nil, meaning
// there was no inherited value — the merge reduces to incoming unchanged.
func Merge(existing, incoming interface{}) interface{} {
	if existing == nil {
		return incoming
	}
	if incoming == nil {
		return existing
	}

	if em, ok := asMapping(existing); ok {
		if im, ok := asMapping(incoming); ok {
			return mergeMapping(em, im)
		}
	}

	if es, ok := asSequence(existing); ok {
		is, ok := asSequence(incoming)
		if !ok {
			is = []interface{}{incoming}
		}
		return append(append([]interface{}{}, es...), is...)
	}

	// existing is a scalar (shorthand for a one-element sequence): prepend
	// it to incoming's elements, or pair it with a scalar incoming, so the
	// append-merge semantics still hold.
	if is, ok := asSequence(incoming); ok {
		return append([]interface{}{existing}, is...)
	}
	return []interface{}{existing, incoming}
}

func asMapping(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case Node:
		return t, true
	case map[string]interface{}:
		return t, true
	default:
		return nil, false
	}
}

func asSequence(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func mergeMapping(a, b map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
