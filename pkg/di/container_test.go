package di_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/medtrain/go-records-core/cache"
	"github.com/medtrain/go-records-core/grants"
	"github.com/medtrain/go-records-core/pkg/di"
	"github.com/medtrain/go-records-core/querycache"
	"github.com/medtrain/go-records-core/records"
)

// emptyFinder has no grants at all.
type emptyFinder struct{}

func (emptyFinder) ImagingGrant(ctx context.Context, fileID, userID uuid.UUID) (*grants.Grant, error) {
	return nil, nil
}

func (emptyFinder) BloodTestGrant(ctx context.Context, fileID, userID uuid.UUID) (*grants.Grant, error) {
	return nil, nil
}

func (emptyFinder) ManualGrant(ctx context.Context, fileID, userID uuid.UUID) (*grants.Grant, error) {
	return nil, nil
}

func TestNewWithDefaults(t *testing.T) {
	c, err := di.NewWithDefaults("clinic", emptyFinder{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if c.Codec() == nil || c.Store() == nil || c.Grants() == nil {
		t.Fatal("expected all container components to be wired")
	}
	if got := c.Codec().Namespace(); got != "clinic" {
		t.Errorf("Namespace() = %q, want %q", got, "clinic")
	}
	if cfg := c.Config(); cfg.DefaultTTL != cache.DefaultTTL {
		t.Errorf("Config().DefaultTTL = %v, want %v", cfg.DefaultTTL, cache.DefaultTTL)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	// A zero config has no TTL and must not produce a container.
	if _, err := di.New("clinic", cache.Config{}, emptyFinder{}, nil); err == nil {
		t.Fatal("expected invalid configuration to be rejected")
	}
}

func TestContainerStoreRoundTrip(t *testing.T) {
	c, err := di.NewWithDefaults("clinic", emptyFinder{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	key := c.Codec().EncodeKey("patients", cache.OpList, nil)
	if err := c.Store().Set(ctx, key, []byte("directory"), 0); err != nil {
		t.Fatal(err)
	}

	value, ok, err := c.Store().Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(value) != "directory" {
		t.Errorf("Get() = %q, %v, want %q, true", value, ok, "directory")
	}
}

func TestNewCachedResource(t *testing.T) {
	c, err := di.NewWithDefaults("clinic", emptyFinder{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := querycache.Resource[records.Patient]{Entity: "patients"}
	cached := di.NewCachedResource(c, res, &patientEngine{})
	if cached == nil {
		t.Fatal("expected a wired cached resource")
	}

	if _, err := cached.List(context.Background(), querycache.ListRequest{Method: "GET"}); err != nil {
		t.Fatalf("List() through the container wiring failed: %v", err)
	}
}

type patientEngine struct{}

func (patientEngine) List(ctx context.Context, q records.ListQuery) ([]records.Patient, int, error) {
	return nil, 0, nil
}

func (patientEngine) Create(ctx context.Context, p records.Patient) (records.Patient, error) {
	return p, nil
}

func (patientEngine) Update(ctx context.Context, p records.Patient) (records.Patient, error) {
	return p, nil
}

func (patientEngine) Delete(ctx context.Context, p records.Patient) error { return nil }
