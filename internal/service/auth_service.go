package service

import "golang.org/x/crypto/bcrypt"

// AuthService validates the single static admin credential pair configured at
// process start. Credentials are not user-manageable.
type AuthService struct {
	login        string
	passwordHash string
}

// NewAuthService creates an AuthService around the configured login and
// bcrypt password digest.
func NewAuthService(login, passwordHash string) *AuthService {
	return &AuthService{login: login, passwordHash: passwordHash}
}

// Authenticate reports whether the supplied pair matches the configured one.
// The login is compared case-sensitively; the password is checked against the
// stored bcrypt digest.
func (s *AuthService) Authenticate(login, password string) bool {
	if login != s.login {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
}
