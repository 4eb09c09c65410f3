// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. Queries use positional parameters and
// every store can be rebound to a transaction with WithTx.
//
// The schema lives in the migrations subpackage as goose SQL files.
package postgres
