package constant

// Set at build time via -ldflags.
var (
	Version     = "dev"
	CompileTime = "unknown"
)

const (
	// AppName is the application identity sent with every API request.
	AppName = "snag_cli"

	// WebBaseURL is the public site base used to build permalink URLs
	// for the resolve endpoint and document links.
	WebBaseURL = "https://audius.co"
)
