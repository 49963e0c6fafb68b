// Package googletranslate talks to the Google Translate HTTP endpoints.
//
// Without an API key the client uses the public translate_a/single endpoint
// (client=gtx), whose response is a nested JSON array of sentence fragments.
// With a key it uses the Cloud Translation v2 REST API. Both paths share the
// retry policy: 408, 429, and 5xx responses and network timeouts are retried
// with exponential backoff, honoring Retry-After.
package googletranslate
