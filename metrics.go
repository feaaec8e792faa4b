package authcore

import internalmetrics "github.com/nvasilev/authcore/internal/metrics"

const (
	// MetricSignupSuccess counts created identities.
	MetricSignupSuccess = internalmetrics.MetricSignupSuccess
	// MetricSignupConflict counts signups rejected for a duplicate email.
	MetricSignupConflict = internalmetrics.MetricSignupConflict
	// MetricLoginSuccess counts direct-auth logins that issued a token.
	MetricLoginSuccess = internalmetrics.MetricLoginSuccess
	// MetricLoginFailure counts logins rejected for bad credentials.
	MetricLoginFailure = internalmetrics.MetricLoginFailure
	// MetricTwoFARequired counts logins that opened a 2FA challenge.
	MetricTwoFARequired = internalmetrics.MetricTwoFARequired
	// MetricTwoFASuccess counts consumed challenges that issued a token.
	MetricTwoFASuccess = internalmetrics.MetricTwoFASuccess
	// MetricTwoFAFailure counts rejected challenge verifications.
	MetricTwoFAFailure = internalmetrics.MetricTwoFAFailure
	// MetricLogout counts successful revocations via logout.
	MetricLogout = internalmetrics.MetricLogout
	// MetricTokenVerifySuccess counts tokens that validated.
	MetricTokenVerifySuccess = internalmetrics.MetricTokenVerifySuccess
	// MetricTokenVerifyFailure counts rejected token validations.
	MetricTokenVerifyFailure = internalmetrics.MetricTokenVerifyFailure
)
