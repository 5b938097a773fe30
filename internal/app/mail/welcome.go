package mail

import "fmt"

const WelcomeSubject = "Welcome to Career Path Builder 🎉"

const welcomeBodyTemplate = `Hi %s,

Your Career Path Builder account has been created successfully.

Start exploring careers, skills, and learning roadmaps today!

Best wishes,
Career Path Builder Team
`

// WelcomeBody renders the plain-text welcome message for a recipient.
func WelcomeBody(name string) string {
	return fmt.Sprintf(welcomeBodyTemplate, name)
}
