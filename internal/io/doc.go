// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - Title sanitization for cover file names
//   - Directory creation
//   - Atomic file writing
//   - Reading the comma separated link list
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("album_arts")
//
//	// Write a file without exposing partial content
//	err := ioutils.WriteFileAtomic("album_arts/Title.jpg", data)
//
// # Title Sanitization
//
//	name := ioutils.SanitizeTitle("AC/DC Live") + ".jpg" // "AC DC Live.jpg"
//
// # Link Lists
//
//	links, err := ioutils.ReadLinks("links.txt", ioutils.DefaultLinkDelimiter)
package ioutils
