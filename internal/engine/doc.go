// Package engine holds the pricing, availability, statistics and booking linkage rules.
//
// Every function is pure: callers pass the full unit, booking, override and contact
// collections they want considered, and nothing here touches storage, the clock or
// any shared state. Invalid input degrades to a neutral value (0, false, empty)
// instead of an error.
package engine
