package domain

// Zero overwrites a byte slice with zeros. Used to clear plaintext buffers
// and raw key material once they have been encrypted or encoded.
func Zero(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
