package config

// Email holds all configuration values for the email service.
// Nothing is required: missing SMTP credentials are reported per request
// rather than at startup, so the service can run in simulation mode.
type Email struct {
	Server   Server
	LogLevel string

	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	// SMTPUseTLS selects STARTTLS. When false, mail goes out in plain text.
	SMTPUseTLS bool
	FromEmail  string
	FromName   string

	// SimulationMode renders the PDF but skips SMTP and always reports success.
	SimulationMode bool

	CORSOrigins []string
}

// HasCredentials reports whether username, password and from-address are all set.
func (e Email) HasCredentials() bool {
	return e.SMTPUsername != "" && e.SMTPPassword != "" && e.FromEmail != ""
}

// LoadEmail reads the email service configuration from environment variables.
func LoadEmail() (Email, error) {
	var invalid []string

	cfg := Email{
		Server: Server{
			Host: getEnv("API_HOST", "0.0.0.0"),
			Port: getInt("API_PORT", 8001, &invalid),
		},
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SMTPServer:     getEnv("SMTP_SERVER", "localhost"),
		SMTPPort:       getInt("SMTP_PORT", 587, &invalid),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:     getBool("SMTP_USE_TLS", true, &invalid),
		FromEmail:      getEnv("FROM_EMAIL", ""),
		FromName:       getEnv("FROM_NAME", "Blue Lotus Foods"),
		SimulationMode: getBool("EMAIL_SIMULATION_MODE", false, &invalid),
		CORSOrigins:    parseList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := problemsError(nil, invalid); err != nil {
		return Email{}, err
	}
	return cfg, nil
}
