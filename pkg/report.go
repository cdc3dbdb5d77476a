package dupescan

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// iovMax bounds the iovec slice size passed to a single writev call
const iovMax = 1024

// ReportWriter emits duplicate groups. Each group is written as the anchor
// path on one line, one duplicate path per following line, and a blank line
// after the group. Files with no duplicates produce no output.
type ReportWriter struct {
	w io.Writer
}

// NewReportWriter creates a report writer targeting w
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: w}
}

// WriteGroups writes every group in order
func (rw *ReportWriter) WriteGroups(groups []DuplicateGroup) error {
	for _, group := range groups {
		if err := rw.writeGroup(group); err != nil {
			return err
		}
	}
	return nil
}

// writeGroup gathers the group's lines and, when the sink is a real file,
// emits them with a single writev instead of one syscall per line
func (rw *ReportWriter) writeGroup(group DuplicateGroup) error {
	lines := make([][]byte, 0, len(group.Files)+1)
	for _, fh := range group.Files {
		lines = append(lines, []byte(fh.RelPath+"\n"))
	}
	lines = append(lines, []byte("\n"))

	if file, ok := rw.w.(*os.File); ok {
		return writevLines(file, lines)
	}

	for _, line := range lines {
		if _, err := rw.w.Write(line); err != nil {
			return fmt.Errorf("failed to write duplicate group: %w", err)
		}
	}
	return nil
}

// writevLines writes lines with vectorio, chunked to respect the IOV_MAX limit
func writevLines(file *os.File, lines [][]byte) error {
	for start := 0; start < len(lines); start += iovMax {
		end := start + iovMax
		if end > len(lines) {
			end = len(lines)
		}

		expected := 0
		iovecs := make([]syscall.Iovec, 0, end-start)
		for _, line := range lines[start:end] {
			if len(line) == 0 {
				continue
			}
			iovecs = append(iovecs, syscall.Iovec{
				Base: &line[0],
				Len:  uint64(len(line)),
			})
			expected += len(line)
		}

		if nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs); err != nil {
			return fmt.Errorf("failed to write duplicate group with vectorio: %w", err)
		} else if nw != expected {
			return fmt.Errorf("duplicate group write incomplete: wrote %d bytes, expected %d", nw, expected)
		}
	}
	return nil
}
