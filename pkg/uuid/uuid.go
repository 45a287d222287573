// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the opaque identifiers used for request tracing and
admin sessions.

Values are Version 7 (time-ordered), so session keys and request logs sort
by creation time when listed.
*/
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string, falling back to a random v4 if the clock-based
// generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
