// Package validation checks submitted registration and login forms before
// they reach the authentication service. Validators are pure functions: all
// violated rules are reported at once, keyed by field, in declaration order.
package validation

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// emailPattern is intentionally simple: local part, "@", domain, ".", suffix.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Errors maps a field name to its violation messages. An empty map means the
// input is valid.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Valid reports whether no field carries an error.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// PasswordPolicy controls the registration password strength rules.
type PasswordPolicy struct {
	RequireSpecial bool
}

// DefaultPasswordPolicy enforces the full rule set including the
// special-character requirement.
var DefaultPasswordPolicy = PasswordPolicy{RequireSpecial: true}

// RegistrationForm carries the raw registration submission.
type RegistrationForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
}

// LoginForm carries the raw login submission.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ValidateRegistration applies the structural and strength rules to a
// registration form and returns every violation.
func ValidateRegistration(form RegistrationForm, policy PasswordPolicy) Errors {
	errs := Errors{}

	if form.Username == "" {
		errs.add("username", "Username is required.")
	} else if utf8.RuneCountInString(form.Username) > 50 {
		errs.add("username", "Username must be between 1 and 50 characters.")
	}

	if form.Email == "" {
		errs.add("email", "Email is required.")
	} else if !emailPattern.MatchString(form.Email) {
		errs.add("email", "Invalid email format.")
	}

	if form.Password == "" {
		errs.add("password", "Password is required.")
	} else {
		for _, msg := range checkStrength(form.Password, policy) {
			errs.add("password", msg)
		}
	}

	if form.PasswordConfirm == "" {
		errs.add("password_confirm", "Password confirmation is required.")
	} else if form.Password != form.PasswordConfirm {
		errs.add("password_confirm", "Passwords do not match.")
	}

	return errs
}

// ValidateLogin checks presence and email syntax only; strength is not
// re-checked at login.
func ValidateLogin(form LoginForm) Errors {
	errs := Errors{}

	if form.Email == "" {
		errs.add("email", "Email is required.")
	} else if !emailPattern.MatchString(form.Email) {
		errs.add("email", "Invalid email format.")
	}

	if form.Password == "" {
		errs.add("password", "Password is required.")
	}

	return errs
}

// checkStrength returns every strength rule the password violates, in rule
// declaration order.
func checkStrength(password string, policy PasswordPolicy) []string {
	var msgs []string
	var hasUpper, hasLower, hasDigit, hasSpecial bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if len(password) < 8 {
		msgs = append(msgs, "Password must be at least 8 characters long.")
	}
	if !hasUpper {
		msgs = append(msgs, "Password must contain at least one uppercase letter.")
	}
	if !hasLower {
		msgs = append(msgs, "Password must contain at least one lowercase letter.")
	}
	if !hasDigit {
		msgs = append(msgs, "Password must contain at least one digit.")
	}
	if policy.RequireSpecial && !hasSpecial {
		msgs = append(msgs, "Password must contain at least one special character.")
	}

	return msgs
}
