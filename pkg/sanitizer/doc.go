// Package sanitizer normalizes guest and admin input before validation and
// storage.
//
// All functions are idempotent and never fail: input that cannot be
// normalized is returned trimmed, or dropped from slices when empty.
package sanitizer
