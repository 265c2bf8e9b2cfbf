// Package statestore persists the single state record: the most recently
// observed signal.
//
// Two backends share the Store interface. FileStore keeps the record as a
// small text file ("month,year" or the raw scalar) written atomically; a
// sibling .lock file taken with gofrs/flock keeps concurrent writers on one
// host from interleaving. SQLiteStore keeps the same encoded value in a
// one-row table. A missing record is a normal result, not an error; any other
// I/O failure is tagged with services.ErrStateIO.
package statestore
