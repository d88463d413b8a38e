package cache_test

import (
	"testing"

	"github.com/medtrain/go-records-core/cache"
	"github.com/medtrain/go-records-core/pkg/testsupport"
)

type keyScenario struct {
	Name    string            `json:"name"`
	Entity  string            `json:"entity"`
	Left    map[string]string `json:"left"`
	Right   map[string]string `json:"right"`
	SameKey bool              `json:"sameKey"`
}

type keyFixtures struct {
	Scenarios []keyScenario `json:"scenarios"`
}

// Fixture-driven key derivation checks covering the representative resource
// shapes of the platform.
func TestEncodeKey_Scenarios(t *testing.T) {
	var fixtures keyFixtures
	testsupport.LoadFixtureJSON(t, "testdata/key_scenarios.json", &fixtures)

	codec := cache.NewKeyCodec("dmr")

	for _, sc := range fixtures.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			left := codec.EncodeKey(sc.Entity, cache.OpList, cache.Params(sc.Left))
			right := codec.EncodeKey(sc.Entity, cache.OpList, cache.Params(sc.Right))

			if sc.SameKey && left != right {
				t.Errorf("expected identical keys, got %q and %q", left, right)
			}
			if !sc.SameKey && left == right {
				t.Errorf("expected distinct keys, both were %q", left)
			}
		})
	}
}
