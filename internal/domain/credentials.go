package domain

// Credentials are the API key pair used to sign exchange requests.
type Credentials struct {
	APIKey    string
	APISecret string
}

func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// String keeps credentials out of logs and formatted output.
func (c Credentials) String() string {
	return "Credentials{APIKey:***, APISecret:***}"
}

func (c Credentials) GoString() string {
	return c.String()
}
