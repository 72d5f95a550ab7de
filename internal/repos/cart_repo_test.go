package repos_test

import (
	"testing"

	"vellashop/internal/repos"
)

func newCartRepo(t *testing.T) *repos.CartRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewCartRepo(db)
}

func TestCartRepoRoundTrip(t *testing.T) {
	repo := newCartRepo(t)

	if _, ok, err := repo.Load("s1"); err != nil || ok {
		t.Fatalf("missing snapshot must be (absent, nil), got ok=%v err=%v", ok, err)
	}

	if err := repo.Save("s1", `[{"productId":42502,"quantity":2}]`); err != nil {
		t.Fatal(err)
	}
	payload, ok, err := repo.Load("s1")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if payload != `[{"productId":42502,"quantity":2}]` {
		t.Fatalf("payload mangled: %s", payload)
	}

	// save is an upsert
	if err := repo.Save("s1", `[]`); err != nil {
		t.Fatal(err)
	}
	payload, _, _ = repo.Load("s1")
	if payload != `[]` {
		t.Fatalf("upsert did not replace: %s", payload)
	}

	if err := repo.Delete("s1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := repo.Load("s1"); ok {
		t.Fatal("snapshot must be gone after delete")
	}
}
