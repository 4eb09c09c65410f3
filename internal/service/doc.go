// Package service contains the application use cases. Services coordinate
// the domain types, the store interfaces and the generation pipeline, and
// receive every dependency through their constructors.
//
// Services return sentinel errors for expected conditions (ErrNoteInUse,
// ErrBatchNotFound, and the domain, store and generation sentinels they pass
// through unchanged) and wrap anything unexpected in *ServiceError. The API
// layer maps these to HTTP status codes.
package service
