package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeDateBasedToken creates an opaque cursor from the last served record's
// creation time and id. Records written in one batch share a timestamp, so the
// id is part of the cursor to keep the resume point unambiguous.
func EncodeDateBasedToken(date time.Time, id string) string {
	return base64.StdEncoding.EncodeToString([]byte(date.Format(timeFormat) + "|" + id))
}

// DecodeDateBasedToken parses a cursor created by EncodeDateBasedToken.
func DecodeDateBasedToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	datePart, id, found := strings.Cut(string(decodedBytes), "|")
	if !found {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (missing id part)")
	}

	date, err := time.Parse(timeFormat, datePart)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	return date, id, nil
}
