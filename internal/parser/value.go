package parser

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcncl/jstool/internal/models"
)

// ParseValueArg interprets a raw CLI value argument.
//
// "@path" reads the value from that file. Anything that scans as a JSON
// literal (true, 42, "quoted", {...}, [...]) is decoded as one; everything
// else becomes a plain string, so `42` is the integer 42 while `hello` is
// the string "hello" without shell quoting gymnastics.
func ParseValueArg(raw string) (*models.Value, error) {
	if strings.HasPrefix(raw, "@") {
		return ParseFile(raw[1:])
	}
	if gjson.Valid(raw) {
		return ParseString(raw)
	}
	return models.String(raw), nil
}
