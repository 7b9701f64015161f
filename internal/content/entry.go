// Package content reads markdown content entries: a YAML front matter block
// between "---" lines followed by a free-text body.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	delimiter = "---"
	extension = ".md"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Entry struct {
	Slug string
	Meta Meta
	Body string

	// MetaErr is set when the front matter block was present but not valid
	// YAML. Meta is empty in that case.
	MetaErr error
}

// Parse splits raw into front matter and body. It never fails: malformed
// front matter yields empty metadata and is reported through Entry.MetaErr.
func Parse(slug string, raw []byte) Entry {
	text := strings.ReplaceAll(string(bytes.TrimPrefix(raw, utf8BOM)), "\r\n", "\n")
	e := Entry{Slug: slug, Meta: Meta{}}

	front, body, ok := splitFrontMatter(text)
	if !ok {
		e.Body = text
		return e
	}
	e.Body = body

	if strings.TrimSpace(front) == "" {
		return e
	}

	var m map[string]any
	if err := yaml.Unmarshal([]byte(front), &m); err != nil {
		e.MetaErr = fmt.Errorf("front matter: %w", err)
		return e
	}
	if m != nil {
		e.Meta = Meta(m)
	}
	return e
}

func splitFrontMatter(text string) (front, body string, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimSpace(first) != delimiter {
		return "", "", false
	}

	var b strings.Builder
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == delimiter {
			return b.String(), tail, true
		}
		if !more {
			// unterminated block
			return "", "", false
		}
		b.WriteString(line)
		b.WriteByte('\n')
		rest = tail
	}
}

// SlugOf derives the stable identifier of an entry from its file name.
func SlugOf(name string) string {
	return strings.TrimSuffix(path.Base(name), extension)
}

// ReadGroup parses every *.md file directly under dir, in file name order. A
// missing directory is an empty group. Unreadable files are skipped and
// reported in the joined error alongside the entries that did load.
func ReadGroup(fsys fs.FS, dir string) ([]Entry, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*"+extension))
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(names))
	var errs []error
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out = append(out, Parse(SlugOf(name), raw))
	}
	return out, errors.Join(errs...)
}

// ReadFile parses a single entry. ok is false when the file does not exist.
func ReadFile(fsys fs.FS, name string) (Entry, bool, error) {
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return Parse(SlugOf(name), raw), true, nil
}
