package domain

// Algorithm represents the AEAD algorithm used for envelope encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of the envelope payload. The
// identifier travels inside every envelope and is pinned on decode: an envelope
// carrying any identifier other than the one the codec was built with is rejected.
//
// Algorithm selection guidelines:
//   - Use AES256GCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20Poly1305 on mobile devices or systems without AES-NI
//   - Both provide equivalent 256-bit security when used correctly
type Algorithm string

const (
	// AES256GCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// AES-GCM (Advanced Encryption Standard in Galois/Counter Mode) combines
	// AES encryption with GMAC authentication. It uses a 256-bit key and
	// provides excellent performance on hardware with AES-NI acceleration.
	//
	// Key features:
	//   - 256-bit key size for maximum security
	//   - 16-byte IV (randomly generated per encryption)
	//   - 16-byte authentication tag, carried as a separate envelope field
	AES256GCM Algorithm = "aes-256-gcm"

	// ChaCha20Poly1305 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305 MAC
	// for authentication. It's designed for high performance on platforms without
	// AES hardware acceleration and is resistant to timing attacks.
	//
	// Key features:
	//   - 256-bit key size
	//   - 12-byte nonce
	//   - 16-byte authentication tag
	//   - Constant-time implementation
	ChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

// KeySize is the required byte length for all symmetric keys in this layer.
// Both the encryption key and the signing key must be exactly 32 bytes (256 bits).
const KeySize = 32
