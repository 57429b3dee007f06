package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Externally sourced event feeds have drifted column names over time (e.g.
// "winner_id" vs "winnerId" vs "winner"). These helpers read a value under any
// of its historical names so the drift is absorbed once, at the ingest
// boundary, and the rest of the code sees a single canonical shape.

func FieldString(row map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		value, exists := lookup(row, key)
		if !exists || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			// JSON numbers arrive as float64; legacy feeds used integer ids.
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func FieldInt(row map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		value, exists := lookup(row, key)
		if !exists || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

// lookup is case-insensitive on the key so "EventName" and "eventname" both
// resolve.
func lookup(row map[string]interface{}, key string) (interface{}, bool) {
	if value, exists := row[key]; exists {
		return value, true
	}
	for k, value := range row {
		if strings.EqualFold(k, key) {
			return value, true
		}
	}
	return nil, false
}
