package output

import (
	"fmt"
	"io"
)

// IDsFormatter outputs just the tip IDs, one per line.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes tip IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Descriptor.ID); err != nil {
			return err
		}
	}
	return nil
}
