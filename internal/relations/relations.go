// Package relations encodes lists of row ids into the ";"-delimited text form used by the
// legacy schema (user habit lists, news comment lists) and back.
package relations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator joins ids inside a delimited field.
const Separator = ";"

var ErrInvalidID = errors.New("invalid id in relation list")

// Decode parses a field that is empty, a single id of any width, or ids joined by Separator.
// Blank segments are ignored.
func Decode(field string) ([]uint, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return []uint{}, nil
	}

	parts := strings.Split(trimmed, Separator)
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		value, err := strconv.ParseUint(segment, 10, 64)
		if err != nil || value == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, segment)
		}
		ids = append(ids, uint(value))
	}
	return ids, nil
}

func Encode(ids []uint) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, Separator)
}

// Contains reports exact membership; "12" does not contain 1.
func Contains(field string, id uint) bool {
	ids, err := Decode(field)
	if err != nil {
		return false
	}
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Append adds id to the field unless it is already present. The returned flag is true when
// the field changed.
func Append(field string, id uint) (string, bool, error) {
	ids, err := Decode(field)
	if err != nil {
		return field, false, err
	}
	for _, existing := range ids {
		if existing == id {
			return Encode(ids), false, nil
		}
	}
	return Encode(append(ids, id)), true, nil
}
