package validator

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// HasExtension checks the lower-cased extension of filename against exts
// (given with the leading dot).
func HasExtension(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && IsInSlice(ext, exts)
}

var storedPathRegex = regexp.MustCompile(`^[A-Za-z0-9._\-/]+$`)

// IsValidStoredPath accepts relative storage keys without parent traversal.
func IsValidStoredPath(path string) bool {
	if !storedPathRegex.MatchString(path) || strings.HasPrefix(path, "/") {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
