// Package models defines the wire-level and domain types the SkillMorph
// client exchanges with the backend.
//
// The package contains two categories of types:
//
// 1. Domain entities: [User] (the authenticated identity), [Course] and
// [Video] (catalog items and their lectures).
//
// 2. Response envelopes: [CatalogPage], [LoginResult], [RefreshResult],
// [CheckoutResult], [CourseData], [CourseList]. JSON tags mirror the
// backend's field names exactly, including the capitalized Token field of
// the refresh endpoint.
//
// [AnonymousUserID] is the sentinel the catalog endpoint expects as user
// context when no session exists.
package models
