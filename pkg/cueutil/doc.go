// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Decoding always follows the same three steps: compile the schema,
// compile the user document and unify it with a schema definition, then
// validate and decode into a Go value. Errors carry the file name and a
// JSON-path style location of the offending field:
//
//	launches.cue: launches[1].runner: 2 errors in empty disjunction
//
// Typical use:
//
//	//go:embed launchfile_schema.cue
//	var schema []byte
//
//	res, err := cueutil.Decode[File](schema, data, "#LaunchFile",
//		cueutil.WithFilename(path))
package cueutil
