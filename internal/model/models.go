// Package model defines the job posting records served by the board.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// JobRecord is a single published posting as returned by the job board API.
// Only the fields the board reads are decoded; everything else is ignored.
type JobRecord struct {
	URL        string  `json:"url"`
	ValidStart string  `json:"valid_start"`
	Options    Options `json:"options"`
	Advert     Advert  `json:"advert"`
}

// Options carries the free-form "_"-prefixed attributes of a posting.
type Options struct {
	Title    Scalar `json:"_title"`
	Location Scalar `json:"_location"`
	RateFrom Scalar `json:"_rateFrom"`
	RateTo   Scalar `json:"_rateTo"`
}

// Advert holds the ordered advert field values.
type Advert struct {
	Values []AdvertValue `json:"values"`
}

// AdvertValue is one {field_id, value} pair of an advert.
type AdvertValue struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
}

// The API serializes empty maps as [] and sometimes sends numbers where text
// is expected. A malformed field degrades to its zero value instead of
// failing the page.

// UnmarshalJSON implements json.Unmarshaler.
func (r *JobRecord) UnmarshalJSON(data []byte) error {
	*r = JobRecord{}
	if !isObject(data) {
		return nil
	}
	var aux struct {
		URL        Scalar  `json:"url"`
		ValidStart Scalar  `json:"valid_start"`
		Options    Options `json:"options"`
		Advert     Advert  `json:"advert"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.URL = aux.URL.String()
	r.ValidStart = aux.ValidStart.String()
	r.Options = aux.Options
	r.Advert = aux.Advert
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Options) UnmarshalJSON(data []byte) error {
	*o = Options{}
	if !isObject(data) {
		return nil
	}
	type plain Options
	return json.Unmarshal(data, (*plain)(o))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Advert) UnmarshalJSON(data []byte) error {
	*a = Advert{}
	if !isObject(data) {
		return nil
	}
	var aux struct {
		Values json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if !isArray(aux.Values) {
		return nil
	}
	return json.Unmarshal(aux.Values, &a.Values)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *AdvertValue) UnmarshalJSON(data []byte) error {
	*v = AdvertValue{}
	if !isObject(data) {
		return nil
	}
	var aux struct {
		FieldID Scalar `json:"field_id"`
		Value   Scalar `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.FieldID = aux.FieldID.String()
	v.Value = aux.Value.String()
	return nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

func isArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

// DescriptionField is the advert field holding the HTML description.
const DescriptionField = "description"

// Field returns the value of the first advert pair with the given id, or ""
// when there is none.
func (r JobRecord) Field(fieldID string) string {
	for _, v := range r.Advert.Values {
		if v.FieldID == fieldID {
			return v.Value
		}
	}
	return ""
}

// Description returns the raw HTML description, or "" when absent.
func (r JobRecord) Description() string { return r.Field(DescriptionField) }

// Scalar is an option value that the API sends either as a JSON string or a
// JSON number. Empty strings, zero, false and null all decode to the empty
// Scalar, which reads as "absent".
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*s = ""
		return nil
	case bytes.Equal(data, []byte("true")):
		*s = "true"
		return nil
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Objects and arrays carry nothing displayable.
		*s = ""
		return nil
	}
	if f == 0 {
		*s = ""
		return nil
	}
	*s = Scalar(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// String returns the scalar's text.
func (s Scalar) String() string { return string(s) }

// Present reports whether the value is set.
func (s Scalar) Present() bool { return s != "" }

// Or returns the scalar text, or fallback when absent.
func (s Scalar) Or(fallback string) string {
	if s == "" {
		return fallback
	}
	return string(s)
}
