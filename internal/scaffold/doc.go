// Package scaffold writes the files of a new type declaration repository. It
// copies static editor and lint configuration, renders typings.json, README.md,
// package.json and LICENSE from embedded templates, and assembles the test
// stub. Each file is written independently so one failure does not prevent the
// others.
package scaffold
