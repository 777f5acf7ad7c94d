// Package cmd implements the kumihan subcommands: parse, validate, info and
// init.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to
// the YAML configuration file.
var ConfigIdentifier = "config"
