// Package forwardauth bridges a forward-auth reverse proxy and a host
// application's cookie-based login. Given a trusted identity header set
// by the proxy, the middleware provisions or reuses a host user record
// and issues the host's native session cookie without ever prompting
// for credentials.
//
// Request handling:
//   - The classifier decides per request between pass-through, logout
//     handling, and auto-login (ignore list, setup gate, existing
//     session short-circuit).
//   - The resolver derives an email from the trusted header and,
//     best effort, display names from an unverified bearer token.
//   - The provisioner find-or-creates the user, reconciles names,
//     enforces the role gate, and issues the session cookie.
//   - The logout coordinator chains local logout to the identity
//     provider's sign-out endpoint across two requests, using a
//     short-lived marker cookie as the only state carrier.
//
// All durable state lives in the host user store and in client-held
// cookies; the component keeps no cross-request memory of its own.
package forwardauth
