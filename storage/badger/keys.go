package badger

// Key prefixes for different data types
const (
	communityRecordPrefix = "comrec"
)

// makeRecordKey generates a key for a community record. The URL is used
// verbatim as the key suffix so Exists checks match exact URLs only.
func makeRecordKey(url string) []byte {
	prefix := communityRecordPrefix + ":"
	buf := make([]byte, len(prefix)+len(url))
	offset := copy(buf, prefix)
	copy(buf[offset:], url)
	return buf
}

// recordKeyURL extracts the URL from a community record key.
func recordKeyURL(key []byte) string {
	prefixLen := len(communityRecordPrefix) + 1
	if len(key) < prefixLen {
		return ""
	}
	return string(key[prefixLen:])
}
