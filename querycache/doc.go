// Package querycache wraps record query engines with parameter-aware read
// caching and write-triggered invalidation.
//
// A Resource declaration controls everything per collection: which request
// parameters enter the cache key, whether the caller's identity does too,
// and which record attributes scope invalidation after writes. The identity
// dimension is the one that matters most: a user-sensitive resource bakes
// the principal id into its keys, so two students issuing byte-identical
// requests can never read each other's cached observations.
//
//	cached := querycache.New(querycache.Resource[records.Note]{
//		Entity:        "notes",
//		AllowedParams: []string{"patient_id"},
//		UserSensitive: true,
//		Scope: func(n records.Note) cache.Params {
//			return cache.Params{
//				"patient_id": n.PatientID.String(),
//				"user_id":    n.UserID.String(),
//			}
//		},
//	}, codec, store, engine, nil)
//
// Only GET-equivalent calls are cached; writes pass through to the engine
// and clear the affected list caches on success. There is a window between
// a write committing and its invalidation running during which a concurrent
// reader can still hit the stale entry; the TTL bounds that staleness and
// the window is otherwise accepted.
package querycache
