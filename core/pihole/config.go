package pihole

// Config holds the connection parameters for one Pi-hole instance.
type Config struct {
	// BaseURL is the root URL of the instance, e.g. https://pihole.lan:443.
	BaseURL string
	// Password is the resolved application or web interface password.
	Password string
	// TimeoutSeconds bounds every HTTP call against the instance.
	TimeoutSeconds int
	// VerifySSL controls TLS certificate verification; disable it only for
	// instances serving self-signed certificates.
	VerifySSL bool
}
