// Package todo owns the task list and its single storage key.
//
// The list is persisted as one JSON array under a fixed key (default "@tasks"):
//
//	[
//	  {"id": "0192f0c4-...", "value": "Buy milk"},
//	  {"id": "0192f0c5-...", "value": "Walk dog"}
//	]
//
// Insertion order is display order. There is no schema version field.
//
// # Consistency
//
// Mutations are optimistic. Add, Delete and DeleteAll update the in-memory
// list first and then write the whole list (or remove the key). Readers see
// the new list while the write is in flight. A failed write is logged and
// returned as a *PersistError; the in-memory list is never rolled back and
// nothing is retried, so memory and storage may differ until the next
// successful write. Writes are serialized and each one carries the newest
// list, so storage never moves back to an older state.
//
// StageAdd, StageDelete and StageDeleteAll split a mutation from its write:
// the change is visible immediately and the returned Pending writes it.
//
// # Loading
//
// Load replaces the in-memory list only when the stored value is a JSON array
// of objects with string "id" and "value" fields (checked against an embedded
// JSON Schema). Anything else is logged and discarded without an error.
package todo
