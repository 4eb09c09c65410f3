// Package store defines the persistence interfaces for notes, flashcards and
// users, the errors implementations return, and the transaction helper that
// services use to group several writes.
//
// Implementations live under internal/platform. Interfaces accept a *sql.Tx
// through WithTx so a service can run several stores in one transaction.
package store
