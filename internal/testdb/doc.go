// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests call GetTestDBWithT, which skips when DATABASE_URL is unset, and run
// their work inside WithTx so every change is rolled back afterwards:
//
//	func TestNoteRoundTrip(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        notes := postgres.NewPostgresNoteStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The schema is created once per database from the embedded goose
// migrations.
package testdb
