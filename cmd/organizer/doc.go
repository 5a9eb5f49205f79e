// Package main hosts the organizer CLI entrypoint and command graph.
//
// Running organizer with a folder argument (or choosing one in the terminal
// folder browser) sorts that folder's files into category subfolders using
// the rules in config.json. Subcommands inspect the rules, show the move
// history, check readiness, and scaffold the settings file. The heavy lifting
// lives in the internal packages; this package wires settings, logging,
// recorders, and terminal output around them.
package main
