package models

import "regexp"

// emailPattern is local@domain.tld with no whitespace and a single '@'.
// The class excludes the same whitespace set as ECMAScript's \s: RE2's \s
// plus \v, the Unicode separators and the byte order mark.
var emailPattern = regexp.MustCompile(
	`^[^@\s\v\p{Z}\x{FEFF}]+@[^@\s\v\p{Z}\x{FEFF}]+\.[^@\s\v\p{Z}\x{FEFF}]+$`,
)

// ValidEmail reports whether email passes the syntactic check. The value is
// not normalized; case and surrounding whitespace are kept as submitted.
func ValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}
