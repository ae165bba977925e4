package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeVisitToken creates a base64 cursor from a visit's time and
// insertion sequence. The pair matches the visit log's derivation order,
// so pagination never skips or repeats events between pages.
func EncodeVisitToken(visitTime time.Time, seq int64) string {
	tokenStr := fmt.Sprintf("%s|%d", visitTime.Format(timeFormat), seq)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeVisitToken parses a cursor back into visit time and sequence.
func DecodeVisitToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	visitTime, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}

	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}

	return visitTime, seq, nil
}
