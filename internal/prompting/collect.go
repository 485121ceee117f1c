// Package prompting collects placeholder values from the interactive user.
package prompting

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/coverletter-generator/internal/filling"
)

// dateFormat is the value given to auto-filled date fields.
const dateFormat = "2006-01-02"

// Collector prompts for one value per placeholder name on a line-based
// terminal. In and Out are injected so sessions and tests can script the
// dialogue; Now overrides the clock for date fields (nil means time.Now).
type Collector struct {
	In  *bufio.Reader
	Out io.Writer
	Now func() time.Time
}

// NewCollector returns a Collector reading from in and writing prompts to out.
func NewCollector(in io.Reader, out io.Writer) *Collector {
	return &Collector{In: bufio.NewReader(in), Out: out}
}

// Collect builds a value set covering every name exactly once, in the given
// order. A name that case-insensitively equals "date" is filled with the
// current local date and never prompted. Every other name is prompted once;
// input is trimmed of surrounding whitespace and may be empty. There is no
// re-prompting: one prompt per name, one pass.
func (c *Collector) Collect(names []string) (filling.Values, error) {
	values := make(filling.Values, len(names))

	fmt.Fprintln(c.Out, "\nEnter values for each field:")
	fmt.Fprintln(c.Out, strings.Repeat("-", 40))

	for _, name := range names {
		if strings.EqualFold(name, "date") {
			value := c.now().Format(dateFormat)
			fmt.Fprintf(c.Out, "  %s: %s (auto)\n", name, value)
			values[name] = value
			continue
		}

		fmt.Fprintf(c.Out, "  %s: ", name)
		line, err := c.In.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read value for %s: %w", name, err)
		}
		values[name] = strings.TrimSpace(line)
	}

	return values, nil
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
