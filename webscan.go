// Package webscan fetches remote documents over HTTP and extracts single
// values from them by resolving a path expression against the parsed markup.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, htmlquery/, etree/).
package webscan
