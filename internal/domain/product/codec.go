package product

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Encode writes p as a JSON object.
func (p Product) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID)
	e.FieldStart(string(FieldNameEN))
	e.Str(p.NameEN)
	e.FieldStart(string(FieldNameJP))
	e.Str(p.NameJP)
	e.FieldStart(string(FieldNameCN))
	e.Str(p.NameCN)
	e.FieldStart(string(FieldCategory))
	e.Str(string(p.Category))
	e.FieldStart(string(FieldBrand))
	e.Str(p.Brand)
	e.FieldStart(string(FieldPrice))
	e.Int64(p.Price)
	e.FieldStart(string(FieldImage))
	e.Str(p.Image)
	e.FieldStart(string(FieldDescriptionEN))
	e.Str(p.DescriptionEN)
	e.FieldStart(string(FieldDescriptionJP))
	e.Str(p.DescriptionJP)
	e.FieldStart(string(FieldDescriptionCN))
	e.Str(p.DescriptionCN)
	e.ObjEnd()
}

// Decode reads a JSON object into p. Unknown keys are skipped.
func (p *Product) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		if key == "id" {
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = v
			return nil
		}
		if Field(key) == FieldPrice {
			v, err := d.Int64()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			p.Price = v
			return nil
		}

		var dst *string
		switch Field(key) {
		case FieldNameEN:
			dst = &p.NameEN
		case FieldNameJP:
			dst = &p.NameJP
		case FieldNameCN:
			dst = &p.NameCN
		case FieldBrand:
			dst = &p.Brand
		case FieldImage:
			dst = &p.Image
		case FieldDescriptionEN:
			dst = &p.DescriptionEN
		case FieldDescriptionJP:
			dst = &p.DescriptionJP
		case FieldDescriptionCN:
			dst = &p.DescriptionCN
		case FieldCategory:
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, key)
			}
			p.Category = Category(v)
			return nil
		default:
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return errors.Wrap(err, key)
		}
		*dst = v
		return nil
	})
}

// EncodeList writes products as a JSON array.
func EncodeList(e *jx.Encoder, products []Product) {
	e.ArrStart()
	for _, p := range products {
		p.Encode(e)
	}
	e.ArrEnd()
}

// DecodeList reads a JSON array of products.
func DecodeList(d *jx.Decoder) ([]Product, error) {
	products := make([]Product, 0)
	err := d.Arr(func(d *jx.Decoder) error {
		var p Product
		if err := p.Decode(d); err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// Encode writes in as a JSON object. Price is written as a string.
func (in Input) Encode(e *jx.Encoder) {
	e.ObjStart()
	for _, f := range Fields() {
		e.FieldStart(string(f))
		e.Str(in.Get(f))
	}
	e.ObjEnd()
}

// Decode reads a JSON object into in. Price may be a string or a number;
// null leaves a field empty.
func (in *Input) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		f := Field(key)
		if in.ref(f) == nil {
			return d.Skip()
		}

		var v string
		switch d.Next() {
		case jx.Null:
			return d.Null()
		case jx.Number:
			if f != FieldPrice {
				return errors.Errorf("%s: expected string", key)
			}
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, key)
			}
			v = string(n)
		default:
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, key)
			}
			v = s
		}
		return in.Set(f, v)
	})
}
