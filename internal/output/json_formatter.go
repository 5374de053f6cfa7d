package output

import (
	"encoding/json"

	"github.com/rpgo/carbonsim/internal/domain"
)

// JSONFormatter serializes the game report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.GameReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
