// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/vanderheijden86/mediadeck/pkg/version.Version=...".
package version

// Version is the current mediadeck version.
var Version = "0.1.0-dev"
