// Package session persists import decision records on behalf of the
// surrounding session layer, backed by SQLite. It owns the one mutable slot
// of a record, the selected candidate index, after the parsing engine has
// returned it. The engine itself never touches this package.
package session
