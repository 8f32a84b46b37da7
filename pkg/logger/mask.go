package logger

import "regexp"

// Keys whose values must never reach a log sink. The value portion of a
// "key=value" substring is replaced; everything else passes through
// untouched. Masking is for log output only and never alters the value
// delivered to the driver.
var sensitivePattern = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token)=[^\s;,&]+`)

// Mask replaces sensitive-looking key/value substrings with a masked form.
// Non-matching input is returned unchanged.
func Mask(input string) string {
	return sensitivePattern.ReplaceAllString(input, "$1=****")
}
