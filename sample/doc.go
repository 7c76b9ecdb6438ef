// Package sample captures point-in-time memory and CPU readings around a
// monitored call and derives before/after/peak/delta figures from them.
//
// Samplers only read shared system counters; every invocation owns its
// snapshot values, so independent calls never cross-contaminate readings.
package sample
