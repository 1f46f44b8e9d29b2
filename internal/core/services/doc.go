// Package services implements the driving port interfaces.
// Services contain the core synchronization logic: they own the
// conversation transcript and the document catalog cache, and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no UI or transport dependencies.
package services
