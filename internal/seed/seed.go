// Package seed reads product fixture files.
package seed

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Read decodes a JSON array of product inputs and validates each one. The
// stream may be gzip-compressed. IDs in the file are ignored.
func Read(r io.Reader) ([]product.Product, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(magic, gzipMagic) {
		zr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip")
		}
		defer func() { _ = zr.Close() }()
		return decode(zr)
	}
	return decode(br)
}

// ReadFile is Read on the named file.
func ReadFile(path string) ([]product.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open seed file")
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

func decode(r io.Reader) ([]product.Product, error) {
	var products []product.Product
	d := jx.Decode(r, 4096)
	err := d.Arr(func(d *jx.Decoder) error {
		var in product.Input
		if err := in.Decode(d); err != nil {
			return err
		}
		p, err := in.Parse()
		if err != nil {
			return errors.Wrapf(err, "product #%d", len(products))
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode seed")
	}
	return products, nil
}
