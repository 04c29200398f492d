// Package product defines the catalog record managed by the admin dashboard
// and the request body used to create or replace it.
package product

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category groups equipment in the catalog.
type Category string

const (
	CategoryGloves     Category = "gloves"
	CategoryMitts      Category = "mitts"
	CategoryProtectors Category = "protectors"
	CategoryUniform    Category = "uniform"
)

// legacyUniform is the value older forms sent for 道着.
const legacyUniform = "fuku"

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryGloves, CategoryMitts, CategoryProtectors, CategoryUniform}
}

// ParseCategory returns the category named by s.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == legacyUniform {
		return CategoryUniform, true
	}
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Product is a catalog record describing one piece of equipment.
type Product struct {
	ID            int64
	NameEN        string
	NameJP        string
	NameCN        string
	Category      Category
	Brand         string
	Price         int64
	Image         string
	DescriptionEN string
	DescriptionJP string
	DescriptionCN string
}

// Input converts p back into an editable request body. The price is rendered
// as plain decimal text.
func (p Product) Input() Input {
	return Input{
		NameEN:        p.NameEN,
		NameJP:        p.NameJP,
		NameCN:        p.NameCN,
		Category:      string(p.Category),
		Brand:         p.Brand,
		Price:         strconv.FormatInt(p.Price, 10),
		Image:         p.Image,
		DescriptionEN: p.DescriptionEN,
		DescriptionJP: p.DescriptionJP,
		DescriptionCN: p.DescriptionCN,
	}
}

// Input is the body of create and replace requests. Every field is text,
// including Price, which travels exactly as the operator typed it.
type Input struct {
	NameEN        string
	NameJP        string
	NameCN        string
	Category      string
	Brand         string
	Price         string
	Image         string
	DescriptionEN string
	DescriptionJP string
	DescriptionCN string
}

// Field names a single Input field. The values double as JSON keys.
type Field string

const (
	FieldNameEN        Field = "name_en"
	FieldNameJP        Field = "name_jp"
	FieldNameCN        Field = "name_cn"
	FieldCategory      Field = "category"
	FieldBrand         Field = "brand"
	FieldPrice         Field = "price"
	FieldImage         Field = "image"
	FieldDescriptionEN Field = "description_en"
	FieldDescriptionJP Field = "description_jp"
	FieldDescriptionCN Field = "description_cn"
)

// Fields lists every Input field in form order.
func Fields() []Field {
	return []Field{
		FieldNameEN, FieldNameJP, FieldNameCN,
		FieldCategory, FieldBrand, FieldPrice, FieldImage,
		FieldDescriptionEN, FieldDescriptionJP, FieldDescriptionCN,
	}
}

// UnknownFieldError is returned when a field name is not part of Input.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return "unknown product field " + strconv.Quote(e.Field)
}

func (in *Input) ref(f Field) *string {
	switch f {
	case FieldNameEN:
		return &in.NameEN
	case FieldNameJP:
		return &in.NameJP
	case FieldNameCN:
		return &in.NameCN
	case FieldCategory:
		return &in.Category
	case FieldBrand:
		return &in.Brand
	case FieldPrice:
		return &in.Price
	case FieldImage:
		return &in.Image
	case FieldDescriptionEN:
		return &in.DescriptionEN
	case FieldDescriptionJP:
		return &in.DescriptionJP
	case FieldDescriptionCN:
		return &in.DescriptionCN
	default:
		return nil
	}
}

// Set replaces one field. Values are stored verbatim.
func (in *Input) Set(f Field, value string) error {
	p := in.ref(f)
	if p == nil {
		return &UnknownFieldError{Field: string(f)}
	}
	*p = value
	return nil
}

// Get returns the value of one field, or "" for an unknown field.
func (in Input) Get(f Field) string {
	if p := in.ref(f); p != nil {
		return *p
	}
	return ""
}

// ValidationError lists the fields of an Input that cannot be persisted.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid product")
	sep := ": "
	for _, f := range Fields() {
		reason, ok := e.Fields[f]
		if !ok {
			continue
		}
		b.WriteString(sep)
		b.WriteString(string(f))
		b.WriteString(" ")
		b.WriteString(reason)
		sep = ", "
	}
	return b.String()
}

// Parse validates in and returns the product it describes, with a zero ID.
// All fields are required. Price must be a non-negative whole number.
func (in Input) Parse() (Product, error) {
	problems := make(map[Field]string)
	for _, f := range Fields() {
		if strings.TrimSpace(in.Get(f)) == "" {
			problems[f] = "is required"
		}
	}

	category, ok := ParseCategory(in.Category)
	if !ok && problems[FieldCategory] == "" {
		problems[FieldCategory] = "is not a known category"
	}

	var price int64
	if problems[FieldPrice] == "" {
		d, err := decimal.NewFromString(strings.TrimSpace(in.Price))
		switch {
		case err != nil:
			problems[FieldPrice] = "is not a number"
		case d.IsNegative():
			problems[FieldPrice] = "must not be negative"
		case !d.IsInteger():
			problems[FieldPrice] = "must be a whole number"
		default:
			price = d.IntPart()
		}
	}

	if problems[FieldImage] == "" {
		u, err := url.Parse(strings.TrimSpace(in.Image))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems[FieldImage] = "must be an absolute http(s) URL"
		}
	}

	if len(problems) > 0 {
		return Product{}, &ValidationError{Fields: problems}
	}

	return Product{
		NameEN:        strings.TrimSpace(in.NameEN),
		NameJP:        strings.TrimSpace(in.NameJP),
		NameCN:        strings.TrimSpace(in.NameCN),
		Category:      category,
		Brand:         strings.TrimSpace(in.Brand),
		Price:         price,
		Image:         strings.TrimSpace(in.Image),
		DescriptionEN: in.DescriptionEN,
		DescriptionJP: in.DescriptionJP,
		DescriptionCN: in.DescriptionCN,
	}, nil
}

// Repository stores products. List returns products ordered by ID.
// Update and Delete return ErrNotFound for an unknown id.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, p Product) (*Product, error)
	Delete(ctx context.Context, id int64) error
}
