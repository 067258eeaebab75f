package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateScale checks that a scale factor is a finite positive number.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return New(ErrCodeInvalidScale, "scale must be a finite number, got %v", scale)
	}
	if scale <= 0 {
		return New(ErrCodeInvalidScale, "scale must be positive, got %v", scale)
	}
	return nil
}

// ValidatePort checks that a TCP port is in the usable range.
func ValidatePort(port int) error {
	if port <= 0 || port > 65535 {
		return New(ErrCodeInvalidPort, "port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// ValidateHost validates a host name or IP literal used to build a server URL.
//
// The validation rules are intentionally conservative:
//   - No empty hosts
//   - No whitespace or control characters
//   - No URL syntax (scheme, path, query, userinfo)
func ValidateHost(host string) error {
	if host == "" {
		return New(ErrCodeInvalidInput, "host cannot be empty")
	}

	for _, r := range host {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "host contains invalid characters")
		}
	}

	if strings.ContainsAny(host, "/?#@") {
		return New(ErrCodeInvalidInput, "host must be a bare name or address: %q", host)
	}

	return nil
}

// ValidatePath validates a file path given on the command line.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidInput, "path contains a null byte")
		}
	}

	return nil
}
