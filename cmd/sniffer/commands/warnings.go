/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: warnings.go
Description: Catalog of common warnings shown to users of the sniffer.
*/

package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Warning keys
const (
	WarnUnicodeDecodeError = "unicodedecodeerror"
)

// warnings holds the user-facing text of each warning
var warnings = map[string]string{
	WarnUnicodeDecodeError: "A decoding error occurred while reading the file. This usually means " +
		"that the file encoding was detected incorrectly. You can set this " +
		"manually by using the --encoding flag.",
}

const warningWidth = 70

// Warning returns the text of a warning wrapped at 70 columns, or the key itself if unknown
func Warning(key string) string {
	if w, ok := warnings[key]; ok {
		lines := strings.Split(text.WrapSoft(w, warningWidth), "\n")
		for i, l := range lines {
			lines[i] = strings.TrimSpace(l)
		}
		return strings.Join(lines, "\n")
	}
	return key
}
