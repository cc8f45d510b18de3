package domain

type Provider string

const (
	ProviderAPIKey Provider = "api_key"
	ProviderJWT    Provider = "jwt"
)

// Credential is the raw authentication material presented by an agent
type Credential struct {
	Provider Provider
	Secret   string
}
