package output

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rpgo/carbonsim/internal/domain"
)

// ErrUnsupportedFormat is returned for report formats with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func joinIDs(ids []domain.ProjectID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ";")
}
