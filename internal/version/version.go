// Package version holds the engine's identity strings, reported to
// the UCI "id" command.
package version

// Name is the engine's UCI-reported name.
const Name = "Corvid"

// Author is the engine's UCI-reported author.
const Author = "kophouse"

// Version is the engine's release string.
const Version = "0.1.0"

// Full returns the combined "<name> <version>" string used in "id name".
func Full() string {
	return Name + " " + Version
}
