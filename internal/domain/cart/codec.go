package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Wire format: a JSON array of line objects. Monetary fields are encoded as
// decimal strings so the stored snapshot round-trips without float drift.

// EncodeLines serializes lines to their snapshot wire format.
func EncodeLines(lines []Line) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, l := range lines {
		encodeLine(&e, l)
	}
	e.ArrEnd()
	return e.Bytes()
}

func encodeLine(e *jx.Encoder, l Line) {
	e.ObjStart()
	e.FieldStart("productId")
	e.Str(l.ProductID)
	e.FieldStart("name")
	e.Str(l.Name)
	e.FieldStart("category")
	e.Str(l.Category)
	e.FieldStart("unitPrice")
	e.Str(l.UnitPrice.String())
	e.FieldStart("originalUnitPrice")
	if l.OriginalUnitPrice.Valid {
		e.Str(l.OriginalUnitPrice.Decimal.String())
	} else {
		e.Null()
	}
	e.FieldStart("imageRef")
	e.Str(l.Image)
	e.FieldStart("quantity")
	e.Int(l.Quantity)
	e.FieldStart("selectedVariant")
	e.Str(l.Variant)
	e.FieldStart("inStock")
	e.Bool(l.InStock)
	e.ObjEnd()
}

// DecodeLines parses a snapshot previously produced by EncodeLines.
func DecodeLines(data []byte) ([]Line, error) {
	d := jx.DecodeBytes(data)

	var lines []Line
	if err := d.Arr(func(d *jx.Decoder) error {
		l, err := decodeLine(d)
		if err != nil {
			return err
		}
		lines = append(lines, l)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode cart lines")
	}
	return lines, nil
}

func decodeLine(d *jx.Decoder) (Line, error) {
	var l Line
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			v, err := d.Str()
			l.ProductID = v
			return err
		case "name":
			v, err := d.Str()
			l.Name = v
			return err
		case "category":
			v, err := d.Str()
			l.Category = v
			return err
		case "unitPrice":
			return decodeDecimal(d, &l.UnitPrice)
		case "originalUnitPrice":
			if d.Next() == jx.Null {
				return d.Null()
			}
			if err := decodeDecimal(d, &l.OriginalUnitPrice.Decimal); err != nil {
				return err
			}
			l.OriginalUnitPrice.Valid = true
			return nil
		case "imageRef":
			v, err := d.Str()
			l.Image = v
			return err
		case "quantity":
			v, err := d.Int()
			l.Quantity = v
			return err
		case "selectedVariant":
			v, err := d.Str()
			l.Variant = v
			return err
		case "inStock":
			v, err := d.Bool()
			l.InStock = v
			return err
		default:
			return d.Skip()
		}
	})
	return l, err
}

func decodeDecimal(d *jx.Decoder, out *decimal.Decimal) error {
	s, err := d.Str()
	if err != nil {
		return err
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return errors.Wrapf(err, "parse decimal %q", s)
	}
	*out = v
	return nil
}
