package wetex

import "fmt"

const supportedPackageMagic = "PKGV0019"

// PackageEntry is one named file inside a Package. Offset and
// Length are relative to the data region immediately following the header
// table; Path uses forward slashes as separators.
type PackageEntry struct {
	Path   string
	Offset uint32
	Length uint32
	Kind   EntryKind
}

// Package is a parsed PKG archive: a magic string, the total header size in
// bytes, and an ordered sequence of entries. Package retains the source
// buffer so entries can be materialised lazily.
type Package struct {
	Magic      string
	HeaderSize uint32
	Entries    []PackageEntry

	src      []byte
	dataBase int
}

// ParsePackage reads a PKG archive from data. Unknown magics whose table
// layout otherwise parses cleanly are accepted, with the returned error
// wrapping ErrUnsupportedVersion rather than failing outright; parsing only
// fails when the header structure itself cannot be read.
func ParsePackage(data []byte) (*Package, error) {
	c := newCursor(data)

	magic, err := c.lengthPrefixedString(maxStringLen)
	if err != nil {
		return nil, fmt.Errorf("pkg header: %w", err)
	}

	count, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("pkg entry count: %w", err)
	}

	entries := make([]PackageEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		path, err := c.lengthPrefixedString(maxStringLen)
		if err != nil {
			return nil, fmt.Errorf("pkg entry %d path: %w", i, err)
		}
		offset, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("pkg entry %d offset: %w", i, err)
		}
		length, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("pkg entry %d length: %w", i, err)
		}
		entries = append(entries, PackageEntry{
			Path:   path,
			Offset: offset,
			Length: length,
			Kind:   entryKindFromPath(path),
		})
	}

	pkg := &Package{
		Magic:      magic,
		HeaderSize: uint32(c.pos),
		Entries:    entries,
		src:        data,
		dataBase:   c.pos,
	}

	if magic != supportedPackageMagic {
		return pkg, fmt.Errorf("%w: pkg magic %q (want %q)", ErrUnsupportedVersion, magic, supportedPackageMagic)
	}
	return pkg, nil
}

// bytesFor returns a materialised copy of an entry's byte range, bounds
// checked against the source buffer per the "every (offset, length) pair
// lies entirely within the source buffer" invariant.
func (p *Package) bytesFor(e PackageEntry) ([]byte, error) {
	start := p.dataBase + int(e.Offset)
	end := start + int(e.Length)
	if start < 0 || end < start || end > len(p.src) {
		return nil, fmt.Errorf("%w: entry %q range [%d,%d) outside source of length %d", ErrMalformedPayload, e.Path, start, end, len(p.src))
	}
	out := make([]byte, e.Length)
	copy(out, p.src[start:end])
	return out, nil
}

// ExtractOne returns a materialised copy of the named entry's bytes.
// Duplicate paths resolve to the first match, not a parse-time error.
func (p *Package) ExtractOne(path string) ([]byte, error) {
	for _, e := range p.Entries {
		if e.Path == path {
			return p.bytesFor(e)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// PackageFile pairs a path with its materialised bytes, returned by
// ExtractAll/ExtractSelected.
type PackageFile struct {
	Path  string
	Bytes []byte
}

// ExtractAll materialises every entry, preserving package order.
func (p *Package) ExtractAll() ([]PackageFile, error) {
	out := make([]PackageFile, 0, len(p.Entries))
	for _, e := range p.Entries {
		b, err := p.bytesFor(e)
		if err != nil {
			return nil, err
		}
		out = append(out, PackageFile{Path: e.Path, Bytes: b})
	}
	return out, nil
}

// ExtractSelected materialises the requested subset in the order of paths;
// the first unknown path fails the whole call with ErrNotFound.
func (p *Package) ExtractSelected(paths []string) ([]PackageFile, error) {
	out := make([]PackageFile, 0, len(paths))
	for _, path := range paths {
		b, err := p.ExtractOne(path)
		if err != nil {
			return nil, err
		}
		out = append(out, PackageFile{Path: path, Bytes: b})
	}
	return out, nil
}
