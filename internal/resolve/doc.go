// Package resolve maps a working directory to the registered project that
// encloses it.
//
// Both the directory and every registered root are canonicalized (symlinks
// resolved) before comparison, and a root only matches on a path-segment
// boundary: /home/u/app encloses /home/u/app/feat/src but not /home/u/app2.
// When several roots enclose the directory, the first record in registry
// order wins.
package resolve
