package configstore

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/exprtk-go/exprtk/internal/symtab"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE constants (name TEXT, value REAL)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO constants (name, value) VALUES ('g', 9.81), ('pi2', 6.28)`); err != nil {
		t.Fatalf("seeding table: %v", err)
	}
	return db
}

func TestLoadConstantsRegistersReadOnlyBindings(t *testing.T) {
	db := openTestDB(t)
	st := symtab.New[float64]()

	if err := LoadConstants(db, "constants", st); err != nil {
		t.Fatalf("LoadConstants: %v", err)
	}

	g := st.GetVariable("g")
	if g == nil || *g != 9.81 {
		t.Fatalf("got %v want 9.81", g)
	}
	if !st.IsConstant("g") {
		t.Fatal("expected g to be registered as a constant")
	}
	pi2 := st.GetVariable("pi2")
	if pi2 == nil || *pi2 != 6.28 {
		t.Fatalf("got %v want 6.28", pi2)
	}
}

func TestLoadConstantsSkipsExistingSymbols(t *testing.T) {
	db := openTestDB(t)
	st := symtab.New[float64]()
	existing := 1.0
	st.AddVariable("g", &existing, false)

	if err := LoadConstants(db, "constants", st); err != nil {
		t.Fatalf("LoadConstants: %v", err)
	}

	if existing != 1.0 {
		t.Fatalf("expected pre-existing g to be untouched, got %v", existing)
	}
}
