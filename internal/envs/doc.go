// Package envs resolves named credential profiles for target n8n servers.
//
// Credentials are read once at startup from the process environment into an
// explicit Config snapshot; nothing in this package reads ambient state after
// that. The key convention is:
//
//	N8N_URL / N8N_API_KEY             default environment
//	N8N_<NAME>_URL / N8N_<NAME>_API_KEY   named environment
//
// Environment names are case-insensitive ("prod" resolves N8N_PROD_URL).
// A profile is valid only when both keys are present; otherwise resolution
// fails with a MissingCredentialsError naming exactly the absent keys.
//
// N8N_ENV selects which named environment acts as the default when no
// environment is requested explicitly. The selection is strict: an
// incomplete selected environment is an error, never a silent fallback to
// the bare N8N_URL/N8N_API_KEY pair.
package envs
