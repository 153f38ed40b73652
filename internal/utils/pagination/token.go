package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeOffsetToken creates an opaque token pointing at position offset of an
// ordered listing, pinned to the listing's snapshot time so a token issued
// against an older view is rejected after a refresh.
func EncodeOffsetToken(offset int, snapshot time.Time) string {
	tokenStr := fmt.Sprintf("%d|%s", offset, snapshot.Format(timeFormat))
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken.
func DecodeOffsetToken(token string) (int, time.Time, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset < 0 {
		return 0, time.Time{}, fmt.Errorf("invalid pagination token format (offset)")
	}

	snapshot, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("invalid pagination token format (snapshot parse): %w", err)
	}

	return offset, snapshot, nil
}

// Page slices items[offset:offset+limit] and reports the next offset, or -1
// when the listing is exhausted.
func Page[T any](items []T, offset, limit int) ([]T, int) {
	if offset >= len(items) {
		return []T{}, -1
	}
	end := offset + limit
	if limit <= 0 || end >= len(items) {
		return items[offset:], -1
	}
	return items[offset:end], end
}
