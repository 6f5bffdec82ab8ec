// Package commands implements the midinotify CLI commands.
package commands
