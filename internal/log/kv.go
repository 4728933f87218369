package log

import (
	"slices"
)

// KV is a set of key-value pairs attached to a log record.
type KV map[string]any

// kvToArgs flattens the first KV into slog arguments sorted by key.
// Any KV after the first is ignored.
func kvToArgs(keyVals ...KV) []any {
	if len(keyVals) == 0 {
		return []any{}
	}

	kv := keyVals[0]
	args := make([]any, 0, len(kv)*2)
	keys := make([]string, 0, len(kv))
	for key := range kv {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, key, kv[key])
	}

	return args
}

// kvToArgsNs is kvToArgs with the namespace as the leading "ns" pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
