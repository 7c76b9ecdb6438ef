// Package schema validates values against declared schemas.
//
// Schemas are explicit objects, either hand-built or inferred once from a
// representative value, and are meant to be compiled at decoration time
// and cached per function rather than re-derived on every call. Validation
// accumulates every field-level violation before returning, so one pass
// reports the full shape mismatch, not just the first field.
package schema
