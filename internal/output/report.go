package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/nzbudget/budget-server/internal/domain"
)

// GenerateReport formats the summary and writes it to a timestamped file,
// except for the console format which goes straight to stdout.
func GenerateReport(summary *domain.BudgetSummary, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}

	if f.Name() == "console" {
		data, err := f.Format(summary)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	_, err := WriteFormatted(f, summary, f.Name())
	return err
}
