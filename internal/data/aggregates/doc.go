// Package aggregates contains the gorm implementations of the library
// aggregate contracts.
//
// Each aggregate composes table repos from internal/data/repos and owns the
// transaction boundary of its write: the root row, its owned rows and the
// patch event land together or not at all.
package aggregates
