package config

// Version is the tenantadmin binary version.
// Set at build time via: -ldflags "-X github.com/persistorai/tenantadmin/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
