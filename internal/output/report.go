package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/carbonsim/internal/domain"
)

// GenerateReport renders report in the named format and writes it to w.
func GenerateReport(w io.Writer, report *domain.GameReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveReport renders report into a timestamped file under dir and returns its path.
// The "all" format writes the verbose console report and the detailed CSV.
func SaveReport(report *domain.GameReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			path, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	path, err := WriteFormatted(f, report, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
