package service

import (
	"authboard/config"
	"authboard/database"
	"authboard/database/model"
	"authboard/logger"
	"authboard/util/crypto"
	"authboard/web/validation"

	"github.com/gin-contrib/sessions"
)

// FailureKind classifies why an authentication operation did not succeed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureValidation means the submitted fields broke a structural or
	// strength rule; details are in FieldErrors.
	FailureValidation
	// FailureConflict means the email is already registered.
	FailureConflict
	// FailureCredentials is the deliberately generic login failure. Unknown
	// email and wrong password are indistinguishable to the caller.
	FailureCredentials
	// FailureInternal is a storage fault. The raw error is logged, never
	// exposed.
	FailureInternal
)

// RegisterResult is the outcome of a registration attempt.
type RegisterResult struct {
	Success     bool
	User        *model.User
	FieldErrors validation.Errors
	Kind        FailureKind
}

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	Success     bool
	User        *model.User
	FieldErrors validation.Errors
	Kind        FailureKind
}

// genericLoginError is attached to the form as a whole so the response
// never reveals which part of the credentials was wrong.
const genericLoginError = "Invalid email or password."

// AuthService orchestrates validation, password hashing and the user store.
// It holds no per-request state.
type AuthService struct {
	userService UserService

	// PasswordPolicy applies to registration only. Zero value disables the
	// special-character rule; use validation.DefaultPasswordPolicy for the
	// full set.
	PasswordPolicy validation.PasswordPolicy
}

// NewAuthService returns an AuthService with the configured password
// policy.
func NewAuthService() *AuthService {
	return &AuthService{
		PasswordPolicy: validation.PasswordPolicy{
			RequireSpecial: config.PasswordRequireSpecial(),
		},
	}
}

// Register validates the form, hashes the password and creates the user.
// No store access happens when validation fails.
func (s *AuthService) Register(form validation.RegistrationForm) RegisterResult {
	if errs := validation.ValidateRegistration(form, s.PasswordPolicy); !errs.Valid() {
		return RegisterResult{FieldErrors: errs, Kind: FailureValidation}
	}

	hash, err := crypto.HashPassword(form.Password)
	if err != nil {
		logger.Error("hash password:", err)
		return RegisterResult{Kind: FailureInternal}
	}

	user, err := s.userService.Create(form.Username, form.Email, hash)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return RegisterResult{
				FieldErrors: validation.Errors{"email": {"Email already registered."}},
				Kind:        FailureConflict,
			}
		}
		logger.Error("create user:", err)
		return RegisterResult{Kind: FailureInternal}
	}

	return RegisterResult{Success: true, User: user}
}

// Login validates the form, looks up the user by email and verifies the
// password against the stored hash.
func (s *AuthService) Login(form validation.LoginForm) LoginResult {
	if errs := validation.ValidateLogin(form); !errs.Valid() {
		return LoginResult{FieldErrors: errs, Kind: FailureValidation}
	}

	user, err := s.userService.GetByEmail(form.Email)
	if err != nil {
		logger.Error("fetch user by email:", err)
		return LoginResult{Kind: FailureInternal}
	}
	if user == nil || !crypto.CheckPasswordHash(user.PasswordHash, form.Password) {
		return LoginResult{
			FieldErrors: validation.Errors{"form": {genericLoginError}},
			Kind:        FailureCredentials,
		}
	}

	return LoginResult{Success: true, User: user}
}

// Logout clears every key from the session and expires the cookie. It is
// idempotent and never fails from the caller's point of view.
func (s *AuthService) Logout(sess sessions.Session) {
	sess.Clear()
	sess.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := sess.Save(); err != nil {
		logger.Warning("save session after logout:", err)
	}
}
