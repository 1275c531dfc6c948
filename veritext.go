// Package veritext acquires clean, human-readable article text from
// arbitrary URLs for downstream claim verification. It classifies the URL
// into a source category, then walks an ordered ladder of extraction
// strategies for that category, from a cheap direct HTTP fetch to a remote
// browser-rendering job, returning the first successful result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, apify/, http/).
package veritext
