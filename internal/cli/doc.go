// Package cli provides the interactive PassKeeper command-line front-end.
//
// It wires the account and secret services into a read-eval-print loop.
// Typical flow: register, log in, store text under a passkey, list the
// stored entries and reveal or delete them by number.
//
// Commands
//
//	Not logged in:  register, login, help, exit
//	Logged in:      store, list, show [N], delete [N], passwd,
//	                deleteaccount, logout, help, exit
//
// Entry numbers shown to the user start at 1. Every service error is turned
// into a message with Message; nothing escapes the loop.
package cli
