// Minimal FASTA reading and writing for contig collections.

package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry. The residue data is read-only as far as this
// package is concerned; callers re-serialize it but never rewrite it.
type Record struct {
	ID          string
	Description string
	Seq         string
}

// lineWidth is the sequence wrap column on output.
const lineWidth = 60

// Read parses all records from r. The identifier is the first whitespace
// separated token of the header; the remainder is the description.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 512*1024*1024)

	var records []Record
	var current *Record
	var seq strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Seq = seq.String()
		records = append(records, *current)
		current = nil
		seq.Reset()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimSpace(line[1:])
			id, desc := splitHeader(header)
			current = &Record{ID: id, Description: desc}
			continue
		}
		if current != nil {
			seq.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fasta: %w", err)
	}
	flush()

	return records, nil
}

// ReadFile loads a whole FASTA file into memory.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func splitHeader(header string) (id, desc string) {
	fields := strings.SplitN(header, " ", 2)
	id = fields[0]
	if len(fields) == 2 {
		desc = strings.TrimSpace(fields[1])
	}
	return id, desc
}

// Header renders the record's full header line without the leading '>'.
func (r Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}

// Write serializes one record, wrapping the sequence at 60 columns.
func Write(w io.Writer, rec Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, ">%s\n", rec.Header()); err != nil {
		return fmt.Errorf("write fasta header: %w", err)
	}
	for i := 0; i < len(rec.Seq); i += lineWidth {
		end := i + lineWidth
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := fmt.Fprintf(bw, "%s\n", rec.Seq[i:end]); err != nil {
			return fmt.Errorf("write fasta sequence: %w", err)
		}
	}
	return bw.Flush()
}

// WriteAll serializes records in order to a single multi-record file.
func WriteAll(w io.Writer, records []Record) error {
	for _, rec := range records {
		if err := Write(w, rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes one record to its own file, overwriting any previous
// content so reruns reconverge on identical output.
func WriteFile(path string, rec Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fasta: %w", err)
	}
	defer f.Close()
	return Write(f, rec)
}
