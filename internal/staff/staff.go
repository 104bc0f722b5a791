package staff

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks a login against a single configured staff account.
// Only the bcrypt hash of the password is kept in memory.
type Authenticator struct {
	username     string
	passwordHash []byte
}

func New(username, password string) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash staff password: %w", err)
	}

	return &Authenticator{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (a *Authenticator) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))

	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}

	return nil
}
