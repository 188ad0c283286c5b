package services

// Mailer sends outbound notification emails. The SMTP transport is an
// external collaborator; services only depend on this interface so
// tests can capture sends.
type Mailer interface {
	// SendVerification mails the verification link for a staged
	// credential change. The link expires with the embedded token.
	SendVerification(to, verificationLink string) error

	// SendCredentials mails the login ID after a successful
	// verification so the staff member knows which account to use.
	SendCredentials(to, loginID string) error

	// SendInspectionReminder mails a maintenance inspection reminder
	// to a homeowner. Milestone is a human-readable label such as
	// "6 months" or "10 years".
	SendInspectionReminder(to, matterName, milestone string) error
}
