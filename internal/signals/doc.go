// Package signals models the single fact extracted from the watched page on
// each run and its on-disk encoding.
//
// A Signal is either a composite month/year pair or a scalar string such as a
// PDF URL. Only the primary key (month, or the scalar value) takes part in
// change detection; the year is informational.
package signals
