// Package config loads and validates the rosterctl configuration.
//
// Configuration comes from ROSTERCTL_* environment variables and an
// optional rosterctl.yaml file (location overridable via ROSTERCTL_CONFIG).
// File values overlay the env-derived baseline. The Paths resolver turns
// configured file names into locations inside the course data directory,
// including the mandatory {group}/{assignment} spreadsheet name template.
package config
