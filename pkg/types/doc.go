// Package types defines the scenario board entity types, source-shape and
// wrapper tags, the update descriptor, configuration, and standard errors
// shared by the scenctl packages.
package types
