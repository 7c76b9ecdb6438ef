// Package config resolves effective monitoring configuration from three
// layers: process-wide defaults, environment overrides, and per-call
// overrides. Resolution is pure; the process-wide store is replaced
// wholesale, never merged in place.
package config
