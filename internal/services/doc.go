// Package services contains the application services of PassKeeper.
//
// AuthService owns the account lifecycle: registration, throttled
// authentication, password change and account deletion. SecretService
// encrypts text under a user-chosen passkey and manages the stored records.
// Both are front-end agnostic; the CLI turns their errors into messages via
// common.KindOf.
package services
