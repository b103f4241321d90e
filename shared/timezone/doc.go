// Package timezone pins wall-clock time to the operator's zone, set by APP_TIMEZONE
// and loaded when the package is imported.
//
// Timestamps such as created_at are formatted in that zone. Stay and pricing dates
// are plain calendar dates held as UTC midnight; Today bridges the two.
package timezone
