package hours

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelKey extracts the numeric ordering key from a market hour label,
// "H7" -> 7. Any non-conforming label yields 0, which makes malformed
// labels sort first in an ascending numeric sort. This is the only
// place that quirk lives; callers must not re-parse labels themselves.
func LabelKey(label string) uint8 {
	if len(label) < 2 || !strings.HasPrefix(label, "H") {
		return 0
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil || n < 1 || n > 255 {
		return 0
	}
	return uint8(n)
}

// FormatLabel renders the display label for an hour key, e.g. 7 -> "H7".
func FormatLabel(hour uint8) string {
	return fmt.Sprintf("H%d", hour)
}
