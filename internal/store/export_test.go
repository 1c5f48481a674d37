package store

import (
	"reflect"
	"testing"

	"github.com/grappleflow/grappleflow/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	addSession(t, src, AddSessionParams{Notes: "drilled arm drags"})
	c := addChallenge(t, src, "Arm drag timing")
	if _, err := src.AppendEntry(AppendEntryParams{ChallengeID: c.ID, Type: model.EntryHypothesis, Content: "drag off their push"}); err != nil {
		t.Fatal(err)
	}
	if _, err := src.AddMessage(model.RoleUser, "how do I time arm drags?"); err != nil {
		t.Fatal(err)
	}

	ex := src.ExportAll()

	dst := newTestStore(t)
	n, err := dst.Import(ex)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 imported records, got %d", n)
	}

	if !reflect.DeepEqual(dst.ExportAll(), ex) {
		t.Error("export/import round-trip mismatch")
	}
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	dst := newTestStore(t)
	addSession(t, dst, AddSessionParams{})

	ex := dst.ExportAll()
	ex.Sessions = append(ex.Sessions, model.Session{ID: "bad"})

	if _, err := dst.Import(ex); err == nil {
		t.Fatal("expected error importing invalid record")
	}
	// Existing state untouched.
	if len(dst.Sessions()) != 1 {
		t.Errorf("failed import mutated state")
	}
}
