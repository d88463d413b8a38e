// Package cache provides parameter-aware cache key derivation and the
// key-value store contract backing cached query results.
//
// # Key derivation
//
// KeyCodec turns (namespace, entity, operation, parameter bag) into a short
// opaque key. Bags with identical pairs serialize identically regardless of
// insertion order: pairs are sorted before hashing, which is the correctness
// property everything else depends on. A user-sensitive resource includes
// the principal id in its bag, so no cached result can leak between users.
//
//	codec := cache.NewKeyCodec("patients")
//	key := codec.EncodeKey("files", cache.OpList, cache.Params{
//		"patient_id": "17", "page": "1", "user_id": "42",
//	})
//
// # Storage
//
// Store wraps a Backend with default-TTL handling and pattern invalidation.
// Invalidation picks its strategy once, at construction: backends that
// implement PatternDeleter use native glob deletion, backends that implement
// KeyScanner get a full-scan prefix match instead. The scan path also
// reconciles write-namespace patterns ({ns}:{entity}:write:...) against
// read-path keys by truncating the pattern at the write marker.
//
// Cache unavailability is not absorbed here: get and set errors propagate to
// the caller. Only the capability probe degrades silently.
package cache
