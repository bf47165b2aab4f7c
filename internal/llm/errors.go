package llm

import "errors"

var (
	// ErrNoCredentials means the selected provider has no API key or token.
	ErrNoCredentials = errors.New("llm provider credentials not configured")

	// ErrUnknownProvider is returned for an unrecognized LLM_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("llm returned an empty response")
)
