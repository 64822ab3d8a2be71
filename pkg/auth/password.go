package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher is the credential service: plaintext in, opaque encoded form
// out. Verification never reveals why a credential failed.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

func (h *BcryptHasher) Verify(plain, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
}
