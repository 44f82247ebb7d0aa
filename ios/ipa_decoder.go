package ios

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"howett.net/plist"
)

const (
	InfoPlistName = "Info.plist"
)

// IPADecoder reads metadata out of an .ipa.
type IPADecoder struct {
	Name string

	f    *os.File
	info *Info
}

func NewIPADecoder(name string) *IPADecoder {
	return &IPADecoder{Name: name}
}

func (i *IPADecoder) zipReader() (*zip.Reader, error) {
	if i.f == nil {
		f, err := os.Open(i.Name)
		if err != nil {
			return nil, err
		}

		i.f = f
	}

	fi, err := i.f.Stat()
	if err != nil {
		return nil, err
	}

	return zip.NewReader(i.f, fi.Size())
}

// isAppInfoPlist reports whether name is the Info.plist of the
// app itself rather than that of an embedded framework or bundle.
func isAppInfoPlist(name string) bool {
	matched, _ := path.Match("Payload/*.app/"+InfoPlistName, name)
	return matched
}

func (i *IPADecoder) infoFromZipReader(zr *zip.Reader) (*Info, error) {
	for _, zf := range zr.File {
		if !isAppInfoPlist(zf.Name) {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}

		info := &Info{}
		if err := plist.NewDecoder(bytes.NewReader(b)).Decode(info); err != nil {
			return nil, fmt.Errorf("decode %s: %w", zf.Name, err)
		}

		i.info = info
		return i.info, nil
	}

	return nil, fmt.Errorf("info not found in .ipa")
}

func (i *IPADecoder) Info(_ context.Context) (*Info, error) {
	if i.info != nil {
		return i.info, nil
	}

	zr, err := i.zipReader()
	if err != nil {
		return nil, err
	}

	return i.infoFromZipReader(zr)
}

func (i *IPADecoder) Close() error {
	i.info = nil
	if i.f != nil {
		f := i.f
		i.f = nil
		return f.Close()
	}

	return nil
}
