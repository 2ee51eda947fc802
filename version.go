package fabula

// Version is the library and CLI version. Overridden at release build time
// via -ldflags "-X github.com/fabulark/fabula.Version=...".
var Version = "0.1.0-dev"
