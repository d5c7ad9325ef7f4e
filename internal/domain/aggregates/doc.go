// Package aggregates defines domain-facing aggregate contracts and the tagged
// error type shared by the patch engine, persistence, and transport layers.
//
// Contracts here avoid persistence/transport details and describe the write
// boundaries where invariants are enforced atomically.
package aggregates
