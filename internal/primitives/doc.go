// Package primitives defines the serializable configuration values for
// declarative compositions: a base descriptor plus an ordered wrapper list.
//
// These are pure data types with validation; realizing a configuration into
// live objects happens in internal/production, against a caller-supplied
// factory registry and effect table.
package primitives
