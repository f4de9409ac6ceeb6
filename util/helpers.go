// Package util provides small helpers shared by the service packages:
// identity normalization, logging setup and document keys.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
)

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
