// Package sheet implements the overlay sheet stack: an ordered set of panels
// where the last entry is topmost and every entry below it is covered.
//
// Pushing covers the current top and may override its options; popping
// exposes the entry beneath and restores it to the options it was pushed with.
package sheet
