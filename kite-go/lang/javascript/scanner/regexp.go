package scanner

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// validFlags accepts any combination of g, i and m, each at most once.
func validFlags(flags string) bool {
	for i, f := range flags {
		if !strings.ContainsRune("gim", f) || strings.ContainsRune(flags[i+1:], f) {
			return false
		}
	}
	return true
}

// validateRegExp compiles the pattern with ECMAScript semantics.
func validateRegExp(pattern, flags string) error {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.Contains(flags, "i") {
		opts |= regexp2.IgnoreCase
	}
	if strings.Contains(flags, "m") {
		opts |= regexp2.Multiline
	}
	if _, err := regexp2.Compile(pattern, opts); err != nil {
		return errors.Wrapf(err, "invalid regular expression /%s/%s", pattern, flags)
	}
	return nil
}
