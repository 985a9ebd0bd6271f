// Package cli implements the command-line interface for courtgrid.
//
// The cli package provides the Cobra-based commands: serve runs the HTTP server (and
// optionally the chat bot), grid renders one week to a file as PNG, text or JSON,
// links prints the public URLs for a date, announce posts the weekly announcement,
// and bot runs the chat bot alone. Settings come from the environment (see package
// config) and individual flags override them.
package cli
