package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way salted digests and
// checks candidates against them. Implementations are pure and safe for
// concurrent use.
type PasswordHasher interface {
	// Hash returns a new digest of password. Two calls with the same input
	// return different digests because every call draws a fresh salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. The comparison runs
	// in constant time with respect to the digest.
	Verify(password, digest string) bool
}

// KeyGenerator produces per-file key material.
type KeyGenerator interface {
	// GenerateFileKey returns 16 random bytes, hex encoded.
	GenerateFileKey() (string, error)
}
