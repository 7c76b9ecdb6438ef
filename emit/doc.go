// Package emit writes structured records describing call outcomes to a
// configured sink. Console sinks render a human-readable line; file sinks
// render field-keyed JSON suitable for machine parsing. Sink failures are
// suppressed and surfaced only as secondary warnings, never as the call's
// status.
package emit
