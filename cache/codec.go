package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator delimits cache key segments.
const KeySeparator = ":"

// OpList is the operation segment shared by list-style reads. Invalidation
// patterns only ever target list caches, so the constant lives here next to
// the pattern builder.
const OpList = "list"

// Params is an order-irrelevant bag of request parameters that scope a
// cached query result. Two bags holding the same pairs encode to the same
// key no matter how they were assembled.
type Params map[string]string

// KeyCodec derives cache keys and invalidation patterns for one namespace.
//
// Keys have the form {namespace}:{entity}:{operation} with a fixed-length
// digest suffix appended when parameters are present. The digest is computed
// over the sorted parameter pairs, which is the property the whole caching
// layer leans on: a key must encode exactly the dimensions that affect the
// result set, independent of parameter order.
type KeyCodec struct {
	namespace string
}

// NewKeyCodec creates a codec for the given namespace. The namespace is
// normalized to snake_case so it is always safe inside a key.
func NewKeyCodec(namespace string) *KeyCodec {
	return &KeyCodec{namespace: toSegment(namespace)}
}

// Namespace returns the normalized namespace segment.
func (c *KeyCodec) Namespace() string {
	return c.namespace
}

// EncodeKey builds the cache key for one read operation. An empty parameter
// bag yields the bare {namespace}:{entity}:{operation} key with no digest.
func (c *KeyCodec) EncodeKey(entity, operation string, params Params) string {
	base := strings.Join([]string{c.namespace, toSegment(entity), operation}, KeySeparator)
	if len(params) == 0 {
		return base
	}
	return base + KeySeparator + digest(serializeParams(params))
}

// EncodeInvalidationPatterns builds the patterns to clear after a write that
// touches the given scoping parameters. The unscoped list pattern is always
// included; every supplied pair contributes an additional scoped pattern.
// Patterns are coarser than exact keys on purpose: list keys carry opaque
// digests, so a write clears every list cache for the entity rather than
// risking a stale entry surviving.
func (c *KeyCodec) EncodeInvalidationPatterns(entity string, scope Params) []string {
	prefix := strings.Join([]string{c.namespace, toSegment(entity), OpList}, KeySeparator)

	patterns := []string{prefix + KeySeparator + "*"}
	for _, name := range sortedKeys(scope) {
		patterns = append(patterns, fmt.Sprintf("%s%s%s_%s%s*",
			prefix, KeySeparator, name, scope[name], KeySeparator))
	}
	return patterns
}

// serializeParams produces a byte-identical textual form for equal bags by
// sorting pairs before serialization.
func serializeParams(params Params) string {
	pairs := make([][2]string, 0, len(params))
	for _, name := range sortedKeys(params) {
		pairs = append(pairs, [2]string{name, params[name]})
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		// A [][2]string cannot fail to marshal; guard anyway so a future
		// change to the pair type cannot silently produce colliding keys.
		return fmt.Sprintf("%v", pairs)
	}
	return string(data)
}

// digest returns a fixed-length 16 hex character hash of the serialized
// parameter bag.
func digest(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

func sortedKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
