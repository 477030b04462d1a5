// Package arena provides the index-stable reduced list used by the Gauss sieve.
//
// Vectors are appended to a slab and never move. Removing a vector sets a
// tombstone bit instead of shifting the slab, so indices collected while
// scanning stay valid until the removals are applied. Compact rebuilds the
// slab once tombstones dominate.
package arena
