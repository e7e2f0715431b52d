package driven

// SecretKeyOpenAI is the SecretStore key under which the OpenAI API key
// is stored.
const SecretKeyOpenAI = "openai_api_key"

// SecretStore holds opaque secret values by string key. The engine uses it
// for exactly one credential: the embedding API key. Implementations may
// fall back to static configuration (environment) when the stored value is
// absent.
type SecretStore interface {
	// Get returns the value for key, or "" when unset. Absence is not an
	// error; callers decide whether a missing secret is fatal.
	Get(key string) (string, error)

	// Set stores a value under key.
	Set(key, value string) error

	// Delete removes a key. Deleting an unknown key is not an error.
	Delete(key string) error
}
