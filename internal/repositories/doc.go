// Package repositories implements SQLite-backed persistence for client
// state that must survive restarts: the access token and imported refresh
// cookie ([CredentialRepository]) and recent committed catalog searches
// ([SearchRepository]).
//
// Schema lives in the shared package's embedded migrations; both
// repositories expect shared.RunMigrations to have been applied.
package repositories
