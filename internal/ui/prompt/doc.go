// Package prompt asks the user for confirmation.
//
// [New] picks the implementation for the terminal at hand: a bubbletea
// prompt when stdin is a TTY, a plain line reader otherwise (pipes, CI).
// Every implementation defaults to "no".
package prompt
