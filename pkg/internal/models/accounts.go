package models

// Account is the identity resolved from a bearer credential.
// Accounts live in the identity provider, nothing is persisted for them here.
type Account struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}
