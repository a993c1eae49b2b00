package app

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Film represents a single film record from the dataset.
//
// Decoding is lenient per field: a value of the wrong JSON type falls back
// to a default instead of failing the whole dataset. Strings take the
// literal text of numbers and booleans; ints take numbers (truncated) and
// numeric strings; anything else becomes 0, "" or nil.
type Film struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"release_year"`
	Director    *string   `json:"director"`
	BoxOffice   BoxOffice `json:"box_office"`
	Country     *string   `json:"country"`
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Film) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Title       json.RawMessage `json:"title"`
		ReleaseYear json.RawMessage `json:"release_year"`
		Director    json.RawMessage `json:"director"`
		BoxOffice   BoxOffice       `json:"box_office"`
		Country     json.RawMessage `json:"country"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	title, _ := lenientString(raw.Title)
	*f = Film{
		ID:          lenientInt(raw.ID),
		Title:       title,
		ReleaseYear: lenientInt(raw.ReleaseYear),
		Director:    lenientStringPtr(raw.Director),
		BoxOffice:   raw.BoxOffice,
		Country:     lenientStringPtr(raw.Country),
	}
	return nil
}

// lenientString returns the text of a JSON string, number or boolean.
// ok is false for null, absent, objects and arrays.
func lenientString(raw json.RawMessage) (text string, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 't', 'f':
		if string(trimmed) == "true" || string(trimmed) == "false" {
			return string(trimmed), true
		}
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", false
		}
		return n.String(), true
	default:
		return "", false
	}
}

func lenientStringPtr(raw json.RawMessage) *string {
	text, ok := lenientString(raw)
	if !ok {
		return nil
	}
	return &text
}

// lenientInt returns a JSON number, or a string holding one, as an int.
// Fractions are truncated; anything unparseable or out of range is 0.
func lenientInt(raw json.RawMessage) int {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}

	text := string(trimmed)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0
		}
		text = strings.TrimSpace(s)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return n
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Trunc(v)
	if v >= math.MaxInt || v <= math.MinInt {
		return 0
	}
	return int(v)
}

// BoxOffice holds the display-formatted box office figure exactly as it
// appears in the source data (e.g. "1,234,567").
//
// The source is not consistent about the JSON type of this field, so decoding
// is lenient: strings are kept verbatim, numbers keep their literal text and
// anything else (null, bool, object) decodes to the empty string.
type BoxOffice string

// UnmarshalJSON implements json.Unmarshaler
func (b *BoxOffice) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*b = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*b = BoxOffice(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*b = BoxOffice(n.String())
	default:
		*b = ""
	}
	return nil
}

// DirectorCount is one bar of the top directors chart
type DirectorCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilmBoxOffice is one bar of the top films chart
type FilmBoxOffice struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	BoxOffice float64 `json:"box_office"`
}

// StringPtr returns a pointer to s, handy for building Film literals
func StringPtr(s string) *string {
	return &s
}
