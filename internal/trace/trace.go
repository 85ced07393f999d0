package trace

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/Borislavv/go-lecar/model"
)

const (
	magic      = "LCTR"
	version    = 1
	headerSize = len(magic) + 1
	recordSize = 8 + 8 + 1
	bufSize    = 512 * 1024
)

var (
	ErrBadTraceMagic      = errors.New("bad trace magic")
	ErrUnsupportedVersion = errors.New("unsupported trace version")
)

// Record is one memory access seen by the last-level cache.
type Record struct {
	PC   uint64
	Addr uint64
	Type model.AccessType
}

// IsGzip reports whether path selects the compressed form.
func IsGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

type Writer struct {
	file *os.File
	tmp  string
	name string
	gw   *gzip.Writer
	bw   *bufio.Writer
	n    int64
}

// Create writes path via a temporary file renamed on Close. A ".gz" suffix enables gzip.
func Create(path string) (*Writer, error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("create trace %s: %w", tmp, err)
	}
	w, err := NewWriter(f, IsGzip(path))
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, err
	}
	w.file, w.tmp, w.name = f, tmp, path
	return w, nil
}

func NewWriter(dst io.Writer, compressed bool) (*Writer, error) {
	w := &Writer{}
	if compressed {
		w.gw = gzip.NewWriter(dst)
		dst = w.gw
	}
	w.bw = bufio.NewWriterSize(dst, bufSize)

	var hdr [headerSize]byte
	copy(hdr[:], magic)
	hdr[len(magic)] = version
	if _, err := w.bw.Write(hdr[:]); err != nil {
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	return w, nil
}

func (w *Writer) Write(r Record) error {
	var buf [recordSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], r.PC)
	binary.LittleEndian.PutUint64(buf[8:16], r.Addr)
	buf[16] = byte(r.Type)
	if _, err := w.bw.Write(buf[:]); err != nil {
		return fmt.Errorf("write trace record %d: %w", w.n, err)
	}
	w.n++
	return nil
}

// Count is the number of records written so far.
func (w *Writer) Count() int64 { return w.n }

func (w *Writer) Close() error {
	err := w.bw.Flush()
	if w.gw != nil {
		err = errors.Join(err, w.gw.Close())
	}
	if w.file != nil {
		err = errors.Join(err, w.file.Close())
		if err == nil {
			err = os.Rename(w.tmp, w.name)
		} else {
			_ = os.Remove(w.tmp)
		}
	}
	if err != nil {
		return fmt.Errorf("close trace: %w", err)
	}
	return nil
}

type Reader struct {
	closers []io.Closer
	br      *bufio.Reader
	n       int64
}

// Open reads a trace file, gunzipping it when the name ends in ".gz".
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	r, err := NewReader(f, IsGzip(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closers = append(r.closers, f)
	return r, nil
}

func NewReader(src io.Reader, compressed bool) (*Reader, error) {
	r := &Reader{}
	if compressed {
		gzr, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("gzip open: %w", err)
		}
		r.closers = append(r.closers, gzr)
		src = gzr
	}
	r.br = bufio.NewReaderSize(src, bufSize)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(r.br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTraceMagic, err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, fmt.Errorf("%w: %q", ErrBadTraceMagic, hdr[:len(magic)])
	}
	if hdr[len(magic)] != version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr[len(magic)])
	}
	return r, nil
}

// Next returns the following record or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	var buf [recordSize]byte
	if _, err := io.ReadFull(r.br, buf[:]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("read trace record %d: %w", r.n, err)
	}
	r.n++
	return Record{
		PC:   binary.LittleEndian.Uint64(buf[0:8]),
		Addr: binary.LittleEndian.Uint64(buf[8:16]),
		Type: model.AccessType(buf[16]),
	}, nil
}

// Records iterates until EOF; a non-EOF error is yielded once and stops the sequence.
func (r *Reader) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Count is the number of records read so far.
func (r *Reader) Count() int64 { return r.n }

func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, r.closers[i].Close())
	}
	return err
}
