// Package configstore realizes the "configuration-driven formulas" use
// case named in spec.md §1's Purpose statement: loading named constant
// bindings from a database table into a symbol table, so a host
// application can keep a formula's tunable constants in config storage
// rather than hardcoded at the call site. Only the bindings ever touch a
// database — a compiled expression tree never does.
package configstore

import (
	"database/sql"
	"fmt"

	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// LoadConstants reads (name, value) rows from table via db and registers
// each as a read-only constant in st via symtab.Table.AddConstant. table
// is expected to expose a `name TEXT` and `value REAL` column pair; rows
// whose name collides with an existing symbol are skipped rather than
// overwriting a live binding.
func LoadConstants[N numeric.Number](db *sql.DB, table string, st *symtab.Table[N]) error {
	rows, err := db.Query(fmt.Sprintf("SELECT name, value FROM %s", table))
	if err != nil {
		return fmt.Errorf("configstore: querying %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("configstore: scanning row from %s: %w", table, err)
		}
		if st.Has(name) {
			continue
		}
		st.AddConstant(name, N(value))
	}
	return rows.Err()
}
