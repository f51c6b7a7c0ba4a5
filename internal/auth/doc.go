// Package auth provides session-based authentication: bcrypt password
// hashing, account lockout after repeated failures, sqlite-backed
// sessions and the gin middleware that injects the current user into
// the request context. Two modes are supported: "none", where every
// request runs as a default local user, and "local", where requests
// must carry a valid session cookie.
package auth
