package corpus

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// row locates one record line inside the file data.
type row struct {
	start, end int
	line       int
}

// File is a Source backed by a corpus file. Plain files are memory-mapped
// where the platform allows it; ".zst" files are decompressed into memory.
// Rows are located once at Open and parsed on every Record call.
type File struct {
	path   string
	format Format
	data   []byte
	rows   []row
	unmap  func() error
}

// Open loads the corpus at path and indexes its rows.
func Open(path string, format Format) (*File, error) {
	var (
		data  []byte
		unmap = func() error { return nil }
		err   error
	)
	if strings.HasSuffix(path, ".zst") {
		data, err = readZstd(path)
	} else {
		data, unmap, err = mapFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "corpus: open %s", path)
	}
	return &File{
		path:   path,
		format: format,
		data:   data,
		rows:   indexRows(data, format),
		unmap:  unmap,
	}, nil
}

// indexRows records the offsets of every line that carries a record.
func indexRows(data []byte, format Format) []row {
	var rows []row
	line := 0
	for start := 0; start < len(data); {
		line++
		end := bytes.IndexByte(data[start:], '\n')
		if end < 0 {
			end = len(data)
		} else {
			end += start
		}
		if !format.skip(data[start:end]) {
			rows = append(rows, row{start: start, end: end, line: line})
		}
		start = end + 1
	}
	return rows
}

func readZstd(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "create zstd decoder")
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decompress")
	}
	return data, nil
}

// Path returns the file the corpus was loaded from.
func (f *File) Path() string { return f.path }

// Format returns the corpus layout.
func (f *File) Format() Format { return f.format }

// Len implements Source.
func (f *File) Len() int { return len(f.rows) }

// Record implements Source.
func (f *File) Record(i int) (Record, error) {
	if i < 0 || i >= len(f.rows) {
		return Record{}, errors.Newf("corpus: record %d out of range [0, %d)", i, len(f.rows))
	}
	r := f.rows[i]
	return f.format.parse(bytes.TrimRight(f.data[r.start:r.end], "\r"), r.line)
}

// Close releases the file mapping. Records must not be read afterwards.
func (f *File) Close() error {
	f.data, f.rows = nil, nil
	unmap := f.unmap
	f.unmap = func() error { return nil }
	if err := unmap(); err != nil {
		return errors.Wrapf(err, "corpus: close %s", f.path)
	}
	return nil
}
