// Package common holds small helpers shared by client packages.
package common

// WipeByteArray zeroes b in place so secrets do not linger in memory.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
