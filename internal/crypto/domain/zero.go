package domain

// Zero overwrites a byte slice in place so key material does not linger in memory.
func Zero(b []byte) {
	clear(b)
}
