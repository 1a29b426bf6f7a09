// Package memory provides in-memory token storage for authgate.
//
// It implements the token repository on a sharded concurrent map keyed
// by token hash. State is process-local: it is lost on restart and is
// not safe for multi-process deployment without an external shared
// store.
package memory
