// Package digest is the oracle consulted by every searcher: it maps a
// candidate integer to the MD5 digest of its canonical decimal form.
//
// All functions are pure and carry no shared state, so they may be called
// from any number of goroutines without synchronization.
package digest
