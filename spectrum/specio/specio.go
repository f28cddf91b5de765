// Package specio reads and writes spectra in the plain text list format:
// a sample count N, then N wavelengths, then N flux values.
//
// The reader is tolerant of fixed-width output whose columns run together
// (negative numbers filling the whole field leave no separating blank) and of
// unparsable fields, which read as zero.
package specio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/cwbudde/algo-lines/spectrum"
)

// Column layout of the writer.
const (
	WavelengthsPerLine = 10
	FluxesPerLine      = 6
)

// Field widths used when a line cannot be split on blanks.
const (
	signedFieldWidth   = 12
	unsignedFieldWidth = 8
)

// Read parses a spectrum from r. The result is validated with spectrum.New.
func Read(r io.Reader) (spectrum.Spectrum, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	n, err := readCount(sc)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	wavs, err := readList(sc, n)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("wavelengths: %w", err)
	}
	flux, err := readList(sc, n)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("fluxes: %w", err)
	}
	return spectrum.New(wavs, flux)
}

// ReadFile reads the spectrum stored at path.
func ReadFile(path string) (spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("specio: %s: %w", path, err)
	}
	return s, nil
}

func readCount(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: missing sample count", spectrum.ErrMalformedInput)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: missing sample count", spectrum.ErrMalformedInput)
	}
	u, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: sample count %q", spectrum.ErrMalformedInput, fields[0])
	}
	n, err := safecast.Conv[int](u)
	if err != nil {
		return 0, fmt.Errorf("%w: sample count %d: %w", spectrum.ErrMalformedInput, u, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: sample count is zero", spectrum.ErrMalformedInput)
	}
	return n, nil
}

// readList consumes whole lines until n values are collected. Values past n
// on the last line are dropped.
func readList(sc *bufio.Scanner, n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for len(out) < n {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: got %d of %d values", spectrum.ErrMalformedInput, len(out), n)
		}
		for _, tok := range SplitLine(sc.Text()) {
			out = append(out, parseValue(tok))
		}
	}
	return out[:n], nil
}

// SplitLine splits one line of the list format into value fields. Lines are
// split on blanks unless a field contains more than one decimal point; such
// lines are cut into fixed-width columns, 12 characters wide when the line
// holds a minus sign and 8 otherwise.
func SplitLine(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Fields(line)
	for _, f := range fields {
		if strings.Count(f, ".") > 1 {
			width := unsignedFieldWidth
			if strings.Contains(line, "-") {
				width = signedFieldWidth
			}
			return chunk(line, width)
		}
	}
	return fields
}

func chunk(line string, width int) []string {
	out := make([]string, 0, len(line)/width+1)
	for i := 0; i < len(line); i += width {
		out = append(out, line[i:min(i+width, len(line))])
	}
	return out
}

// parseValue returns 0 for fields that are not finite numbers.
func parseValue(tok string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Write stores s in the list format.
func Write(w io.Writer, s spectrum.Spectrum) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d", s.Len())
	writeList(bw, s.Wavelengths(), WavelengthsPerLine, "%10.2f")
	writeList(bw, s.Fluxes(), FluxesPerLine, "%12.5e")
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteFile stores s at path, replacing any existing file.
func WriteFile(path string, s spectrum.Spectrum) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, s)
}

func writeList(w *bufio.Writer, values []float64, perLine int, format string) {
	for i, v := range values {
		if i%perLine == 0 {
			w.WriteByte('\n')
		}
		fmt.Fprintf(w, format, v)
	}
}
