// Package scenctl exposes the build version consumed by the CLI and the
// update engine.
package scenctl

// Version is the current scenctl release. Portable builds compare it
// against the release feed to decide whether an update is available.
const Version = "1.2.0"
