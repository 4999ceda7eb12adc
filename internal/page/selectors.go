package page

// Element keys of the login page.
const (
	// Login form
	SelectorUsernameInput = "username"
	SelectorPasswordInput = "password"
	SelectorLoginButton   = "login-button"

	// Result banners
	SelectorErrorMessage   = "error-message"
	SelectorWelcomeMessage = "welcome-message"

	// LoginPath is appended to the base URL to reach the login form.
	LoginPath = "/login"
)
