package billing

import "fmt"

// FormatReference renders the human-readable invoice reference for a given
// calendar year and sequence number, e.g. INV-2026-0042. Sequences restart
// at 1 every year; the storage layer hands them out from an atomic per-year
// counter so concurrent invoice creation cannot mint colliding references.
func FormatReference(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}
