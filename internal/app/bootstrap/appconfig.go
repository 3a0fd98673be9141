// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports and TLS, logging level and format, CORS, and request body limits.
// AppConfig is where everything specific to PerceptAI lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Email/SMTP configuration for the newsletter
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables auth)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@perceptai.dev)
	MailFromName string // From display name (e.g., PerceptAI)
	MailEnabled  bool   // When false, no mail leaves the process

	// Vision demo runner
	ScriptsDir string // Directory holding the executable demo scripts
	PythonBin  string // Python interpreter used to launch demos

	// Site identity used in emails and links
	SiteName string // e.g., "PerceptAI"
	BaseURL  string // e.g., "https://perceptai.dev" or "http://localhost:3000"
}
