package orm

// CompositeKey joins given parts into a single key. Every part but the last
// is prefixed with its length so that no two different part lists can
// produce the same key.
func CompositeKey(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p) + 1
	}
	key := make([]byte, 0, n)
	for i, p := range parts {
		if i < len(parts)-1 {
			if len(p) > 255 {
				panic("key part too long")
			}
			key = append(key, byte(len(p)))
		}
		key = append(key, p...)
	}
	return key
}
