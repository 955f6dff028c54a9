package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/unistroke/core"
)

// ErrMalformedDataset is returned when input does not follow the exchange format.
var ErrMalformedDataset = errors.New("malformed dataset")

// maxDeclaredPoints caps the point count a single template may declare so a
// corrupt header cannot force a huge allocation.
const maxDeclaredPoints = 1 << 20

// tokenReader walks a whitespace-separated token stream.
type tokenReader struct {
	scanner *bufio.Scanner
	index   int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

func (tr *tokenReader) next(what string) (string, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformedDataset, what)
	}
	tr.index++
	return tr.scanner.Text(), nil
}

func (tr *tokenReader) nextInt(what string) (int, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: token %d: %s must be a non-negative integer, got %q", ErrMalformedDataset, tr.index, what, tok)
	}
	return n, nil
}

func (tr *tokenReader) nextFloat(what string) (float64, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d: %s must be a number, got %q", ErrMalformedDataset, tr.index, what, tok)
	}
	return f, nil
}

// Parse reads templates in the exchange format. Templates are returned in
// file order without IDs; geometry is not validated.
func Parse(r io.Reader) ([]*core.RawTemplate, error) {
	tr := newTokenReader(r)

	count, err := tr.nextInt("template count")
	if err != nil {
		return nil, err
	}

	templates := make([]*core.RawTemplate, 0, min(count, 1024))
	for i := 0; i < count; i++ {
		name, err := tr.next("template name")
		if err != nil {
			return nil, err
		}
		numPoints, err := tr.nextInt("point count")
		if err != nil {
			return nil, err
		}
		if numPoints > maxDeclaredPoints {
			return nil, fmt.Errorf("%w: template %q declares %d points", ErrMalformedDataset, name, numPoints)
		}

		points := make(core.Stroke, numPoints)
		for j := range points {
			if points[j].X, err = tr.nextFloat("x coordinate"); err != nil {
				return nil, err
			}
			if points[j].Y, err = tr.nextFloat("y coordinate"); err != nil {
				return nil, err
			}
		}
		templates = append(templates, &core.RawTemplate{Name: name, Points: points})
	}

	if tr.scanner.Scan() {
		return nil, fmt.Errorf("%w: trailing data after %d templates", ErrMalformedDataset, count)
	}
	if err := tr.scanner.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// ParseFile reads templates from a file in the exchange format.
func ParseFile(path string) ([]*core.RawTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	templates, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return templates, nil
}

// Write writes templates in the exchange format, one template per line.
// Coordinates are written with the shortest representation that parses back
// to the same value.
func Write(w io.Writer, templates []*core.RawTemplate) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(templates))

	var buf []byte
	for _, template := range templates {
		if err := validateName(template.Name); err != nil {
			return err
		}
		buf = buf[:0]
		buf = append(buf, template.Name...)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(len(template.Points)), 10)
		for _, p := range template.Points {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, p.X, 'g', -1, 64)
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// validateName rejects names that would not survive a round trip.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %w", ErrMalformedDataset, core.ErrEmptyTemplateName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: template name %q contains whitespace", ErrMalformedDataset, name)
	}
	return nil
}
