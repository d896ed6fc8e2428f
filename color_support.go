package tprint

import (
	"os"
	"strings"
)

// DetectColorSupport returns false when the environment asks for plain output.
func DetectColorSupport() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TPRINT_COLOR") == "0" {
		return false
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" {
		return false
	}
	return true
}
