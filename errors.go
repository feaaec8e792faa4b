package authcore

import "errors"

var (
	// ErrEmailEmpty reports an empty or whitespace-only email input.
	ErrEmailEmpty = errors.New("email is empty")
	// ErrEmailInvalid reports an email that does not match the address grammar.
	ErrEmailInvalid = errors.New("email format is invalid")
	// ErrPasswordEmpty reports an empty password input.
	ErrPasswordEmpty = errors.New("password is empty")
	// ErrPasswordTooShort reports a password below 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong reports a password above 128 characters.
	ErrPasswordTooLong = errors.New("password must be at most 128 characters")
	// ErrPasswordMissingUpper reports a password without an uppercase letter.
	ErrPasswordMissingUpper = errors.New("password must contain an uppercase letter")
	// ErrPasswordMissingLower reports a password without a lowercase letter.
	ErrPasswordMissingLower = errors.New("password must contain a lowercase letter")
	// ErrPasswordMissingDigit reports a password without a digit.
	ErrPasswordMissingDigit = errors.New("password must contain a digit")
	// ErrCodeInvalid reports a one-time code that is not exactly 6 ASCII digits.
	ErrCodeInvalid = errors.New("code must be exactly 6 digits")
	// ErrAttemptIDInvalid reports a login attempt id that is not a hyphenated UUID.
	ErrAttemptIDInvalid = errors.New("login attempt id is invalid")

	// ErrUserAlreadyExists is returned by [UserStore.Add] for a duplicate email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is returned by [UserStore.Get] when no identity matches.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password on
	// login, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenAlreadyBanned is returned by [BannedTokenStore.Ban] on re-ban.
	ErrTokenAlreadyBanned = errors.New("token already banned")
	// ErrCodeAlreadyExists is returned by [TwoFACodeStore.Add] when a
	// challenge is already outstanding for the email.
	ErrCodeAlreadyExists = errors.New("2fa challenge already exists")
	// ErrCodeNotFound is returned by [TwoFACodeStore.Get] and
	// [TwoFACodeStore.Remove] when no challenge is outstanding.
	ErrCodeNotFound = errors.New("2fa challenge not found")

	// ErrUnauthorized is the generic auth-failure outcome. It never reveals
	// whether the attempt id, the code, or the challenge itself was wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingToken reports a request with no token at all.
	ErrMissingToken = errors.New("missing token")
	// ErrTokenMalformed reports an empty token string.
	ErrTokenMalformed = errors.New("malformed token input")
	// ErrTokenInvalid reports a token that failed signature, expiry or
	// revocation checks.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrUnexpected is the opaque internal failure: hashing task errors,
	// email dispatch failures, store backend errors, corrupt persisted hashes.
	ErrUnexpected = errors.New("unexpected error")

	// ErrEngineNotReady reports use of an Engine with missing dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")
)

var validationErrors = []error{
	ErrEmailEmpty,
	ErrEmailInvalid,
	ErrPasswordEmpty,
	ErrPasswordTooShort,
	ErrPasswordTooLong,
	ErrPasswordMissingUpper,
	ErrPasswordMissingLower,
	ErrPasswordMissingDigit,
	ErrCodeInvalid,
	ErrAttemptIDInvalid,
}

// IsValidationError reports whether err is a value-format failure. The
// transport layer maps this category to HTTP 400.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
