// Package bsonjson converts values decoded from MongoDB into plain JSON-safe values.
//
// The mapping is the "bsonjson/v1" convention:
//
//	ObjectID            24-char lowercase hex string          (ParseObjectID)
//	DateTime, time.Time RFC 3339 UTC, millisecond precision   (ParseDateTime)
//	                    outside years 0000-9999: the millisecond count since the
//	                    Unix epoch as a decimal string, e.g. "253402300800000"
//	Decimal128          JSON number carrying the exact text   (ParseDecimal128)
//	int32, int64        JSON number
//	double              JSON number
//	NaN, ±Inf           "NaN", "Infinity", "-Infinity"
//	Binary (UUID)       canonical UUID string                 (uuid.Parse)
//	Binary (other)      standard base64 string
//	Timestamp           {"t": seconds, "i": increment}
//	Regex               "/pattern/options"
//	JavaScript, Symbol  the code or symbol text
//	DBPointer           {"$ref": collection, "$id": hex}
//	MinKey, MaxKey      "MinKey", "MaxKey"
//	null, undefined     null
//
// Documents and arrays are converted recursively. Any other Go type is an error.
package bsonjson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Version names the convention implemented by this package. It is sent to clients in
// the X-Document-Encoding header so they know how to read the string forms back.
const Version = "bsonjson/v1"

// DateTimeLayout is RFC 3339 with exactly three fractional digits, which is the full
// precision of a BSON datetime.
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// BSON binary subtypes that hold a 16-byte UUID.
const (
	subtypeUUIDOld byte = 0x03
	subtypeUUID    byte = 0x04
)

// Document converts a single decoded document. A nil document stays nil so it
// encodes as JSON null.
func Document(doc bson.M) (map[string]any, error) {
	if doc == nil {
		return nil, nil
	}
	return convertMap(doc)
}

// Documents converts a list of documents. The result is never nil, so an empty
// collection encodes as [] rather than null.
func Documents(docs []bson.M) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(docs))
	for i, doc := range docs {
		converted, err := convertMap(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// Convert maps one decoded BSON value to its JSON-safe form.
func Convert(v any) (any, error) {
	switch val := v.(type) {
	case nil, bson.Null, bson.Undefined:
		return nil, nil
	case string, bool:
		return val, nil
	case int32, int64, int:
		return val, nil
	case float64:
		return convertFloat(val), nil
	case float32:
		return convertFloat(float64(val)), nil

	case bson.ObjectID:
		return val.Hex(), nil
	case bson.DateTime:
		return FormatDateTime(val), nil
	case time.Time:
		return formatTime(val, bson.NewDateTimeFromTime(val)), nil
	case bson.Decimal128:
		return convertDecimal(val), nil
	case bson.Timestamp:
		return map[string]any{"t": val.T, "i": val.I}, nil
	case bson.Binary:
		return convertBinary(val), nil
	case bson.Regex:
		return "/" + val.Pattern + "/" + val.Options, nil
	case bson.JavaScript:
		return string(val), nil
	case bson.Symbol:
		return string(val), nil
	case bson.CodeWithScope:
		return string(val.Code), nil
	case bson.DBPointer:
		return map[string]any{"$ref": val.DB, "$id": val.Pointer.Hex()}, nil
	case bson.MinKey:
		return "MinKey", nil
	case bson.MaxKey:
		return "MaxKey", nil

	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			c, err := Convert(e.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", e.Key, err)
			}
			out[e.Key] = c
		}
		return out, nil
	case bson.M:
		return convertMap(val)
	case map[string]any:
		return convertMap(val)
	case bson.A:
		return convertSlice(val)
	case []any:
		return convertSlice(val)
	}
	return nil, fmt.Errorf("bsonjson: unsupported value of type %T", v)
}

// FormatDateTime renders d in the convention's date layout. RFC 3339 only has
// four-digit years, so datetimes outside 0000-9999 are written as their millisecond
// count instead.
func FormatDateTime(d bson.DateTime) string {
	return formatTime(d.Time(), d)
}

func formatTime(t time.Time, d bson.DateTime) string {
	t = t.UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return strconv.FormatInt(int64(d), 10)
	}
	return t.Format(DateTimeLayout)
}

// ParseDateTime reverses FormatDateTime, accepting both the RFC 3339 text and the
// millisecond count.
func ParseDateTime(s string) (bson.DateTime, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return bson.DateTime(ms), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("bsonjson: parse datetime: %w", err)
	}
	return bson.NewDateTimeFromTime(t), nil
}

// ParseObjectID reverses the hex rendering of an ObjectID.
func ParseObjectID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("bsonjson: parse object id: %w", err)
	}
	return id, nil
}

// ParseDecimal128 reverses the rendering of a Decimal128, accepting both the number
// text and the NaN/Infinity strings.
func ParseDecimal128(s string) (bson.Decimal128, error) {
	d, err := bson.ParseDecimal128(s)
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("bsonjson: parse decimal: %w", err)
	}
	return d, nil
}

func convertMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		c, err := Convert(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}

func convertSlice(s []any) ([]any, error) {
	out := make([]any, 0, len(s))
	for i, v := range s {
		c, err := Convert(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// convertFloat keeps finite doubles as numbers. encoding/json refuses NaN and Inf,
// so those become their names.
func convertFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return f
}

func convertDecimal(d bson.Decimal128) any {
	s := d.String()
	switch s {
	case "NaN", "Infinity", "-Infinity":
		return s
	}
	// json.Number is written verbatim, so no digits are lost to float64.
	return json.Number(s)
}

func convertBinary(b bson.Binary) any {
	if (b.Subtype == subtypeUUID || b.Subtype == subtypeUUIDOld) && len(b.Data) == 16 {
		if id, err := uuid.FromBytes(b.Data); err == nil {
			return id.String()
		}
	}
	return base64.StdEncoding.EncodeToString(b.Data)
}
