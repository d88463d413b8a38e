package querycache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medtrain/go-records-core/cache"
	"github.com/medtrain/go-records-core/querycache"
	"github.com/medtrain/go-records-core/records"
)

func TestCreateInvalidatesListCaches(t *testing.T) {
	cached, engine, backend := newCachedNotes(t, noteResource(true))
	student := uuid.New()
	patient := uuid.New()
	ctx := studentCtx(student)
	req := querycache.ListRequest{Method: "GET", Query: map[string]string{"patient_id": patient.String()}}

	engine.records = []records.Note{}
	if _, err := cached.List(ctx, req); err != nil {
		t.Fatal(err)
	}
	if backend.len() != 1 {
		t.Fatalf("expected a warm cache entry, got %d", backend.len())
	}

	note := records.Note{ID: uuid.New(), PatientID: patient, UserID: student, Content: "new vitals noted"}
	if _, err := cached.Create(ctx, note); err != nil {
		t.Fatal(err)
	}
	if len(engine.created) != 1 {
		t.Fatalf("expected the write to reach the engine, got %d", len(engine.created))
	}
	if backend.len() != 0 {
		t.Fatalf("expected the write to clear the list cache, %d entries remain", backend.len())
	}

	// The next read repopulates with the post-write result.
	engine.records = []records.Note{note}
	res, err := cached.List(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 1 || res.Records[0].ID != note.ID {
		t.Errorf("expected the fresh page after invalidation, got %+v", res.Records)
	}
}

func TestUpdateAndDeleteInvalidate(t *testing.T) {
	student := uuid.New()
	patient := uuid.New()
	note := records.Note{ID: uuid.New(), PatientID: patient, UserID: student, Content: "draft"}
	warm := querycache.ListRequest{Method: "GET", Query: map[string]string{"patient_id": patient.String()}}

	t.Run("update", func(t *testing.T) {
		cached, engine, backend := newCachedNotes(t, noteResource(true))
		ctx := studentCtx(student)
		if _, err := cached.List(ctx, warm); err != nil {
			t.Fatal(err)
		}
		if _, err := cached.Update(ctx, note); err != nil {
			t.Fatal(err)
		}
		if len(engine.updated) != 1 || backend.len() != 0 {
			t.Errorf("update: %d engine writes, %d cache entries remain", len(engine.updated), backend.len())
		}
	})

	t.Run("delete", func(t *testing.T) {
		cached, engine, backend := newCachedNotes(t, noteResource(true))
		ctx := studentCtx(student)
		if _, err := cached.List(ctx, warm); err != nil {
			t.Fatal(err)
		}
		if err := cached.Delete(ctx, note); err != nil {
			t.Fatal(err)
		}
		if len(engine.deleted) != 1 || backend.len() != 0 {
			t.Errorf("delete: %d engine deletes, %d cache entries remain", len(engine.deleted), backend.len())
		}
	})
}

func TestWriteWithoutScopeLeavesCacheAlone(t *testing.T) {
	res := noteResource(false)
	res.Scope = nil
	cached, _, backend := newCachedNotes(t, res)
	ctx := context.Background()

	if _, err := cached.List(ctx, querycache.ListRequest{Method: "GET"}); err != nil {
		t.Fatal(err)
	}
	before := backend.len()

	if _, err := cached.Create(ctx, records.Note{ID: uuid.New()}); err != nil {
		t.Fatal(err)
	}
	if backend.len() != before {
		t.Errorf("expected unscoped resource writes to skip invalidation, %d -> %d entries", before, backend.len())
	}
}

func TestInvalidationScopedToEntity(t *testing.T) {
	// A note write must not clear cached pages of other entities in the same
	// namespace.
	backend := newMemBackend()
	store, err := cache.NewStore(backend, time.Minute, nil)
	if err != nil {
		t.Fatal(err)
	}
	codec := cache.NewKeyCodec("clinic")
	engine := &fakeEngine[records.Note]{}
	cached := querycache.New(noteResource(true), codec, store, engine, nil)

	patientsKey := codec.EncodeKey("patients", cache.OpList, cache.Params{"page": "1"})
	if err := store.Set(context.Background(), patientsKey, []byte("directory page"), 0); err != nil {
		t.Fatal(err)
	}

	note := records.Note{ID: uuid.New(), PatientID: uuid.New(), UserID: uuid.New()}
	if _, err := cached.Create(context.Background(), note); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := store.Get(context.Background(), patientsKey); !ok {
		t.Error("note write cleared an unrelated entity's cache entry")
	}
}

func TestInvalidateOnGrantChange(t *testing.T) {
	backend := newMemBackend()
	store, err := cache.NewStore(backend, time.Minute, nil)
	if err != nil {
		t.Fatal(err)
	}
	codec := cache.NewKeyCodec("clinic")
	ctx := context.Background()

	patient := uuid.New()
	student := uuid.New()

	fileKey := codec.EncodeKey("files", cache.OpList, cache.Params{
		"patient_id": patient.String(),
		"user_id":    student.String(),
	})
	patientsKey := codec.EncodeKey("patients", cache.OpList, nil)
	if err := store.Set(ctx, fileKey, []byte("file page"), 0); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, patientsKey, []byte("directory"), 0); err != nil {
		t.Fatal(err)
	}

	if err := querycache.InvalidateOnGrantChange(ctx, codec, store, patient, student); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := store.Get(ctx, fileKey); ok {
		t.Error("expected the student's file list entry to be cleared")
	}
	if _, ok, _ := store.Get(ctx, patientsKey); !ok {
		t.Error("grant change cleared an unrelated entity's entry")
	}
}
