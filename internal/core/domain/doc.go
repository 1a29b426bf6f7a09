// Package domain defines the core domain models for authgate.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. The two entities are
// Credential (a static user record with an argon2id password hash
// and a role set) and Token (a bearer-token record carrying a role
// snapshot and its issue/expiry timestamps).
package domain
