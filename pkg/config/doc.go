// Package config defines the gateway's YAML configuration, its defaults,
// and validation.
//
// Loading follows a fixed sequence: read the file, unmarshal, apply
// defaults, apply environment overrides, validate. Environment variables
// use the PRISMFLOW_SECTION_FIELD convention (for example
// PRISMFLOW_SERVER_LISTEN_ADDRESS); the upstream credential additionally
// honors the conventional OPENAI_API_KEY and OPENAI_BASE_URL names.
//
// A missing upstream API key is deliberately not a validation error. The
// gateway starts without one and reports a configuration error on the
// first request that needs the credential, so health and metrics
// endpoints stay reachable on a misconfigured deployment.
package config
