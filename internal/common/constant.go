package common

// AuthKeySize is the length in bytes of an MTProto authorization key.
const AuthKeySize = 256

// DefaultPort is the port written for every account; it is never read from input.
const DefaultPort = 443

// SchemaVersion is the marker stored in the container's version table.
const SchemaVersion = 7

// WipeByteArray overwrites b with zeros. Used on temporary key buffers once an
// account has taken its own copy. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
