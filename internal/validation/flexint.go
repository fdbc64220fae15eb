package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// FlexInt decodes from a JSON number or a numeric JSON string holding a whole
// number. Fractions are rejected. Range checks are left to binding tags.
type FlexInt int

func (f FlexInt) Int() int {
	return int(f)
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)

	var text string
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
		return &json.UnmarshalTypeError{
			Value: "non-numeric value " + strconv.Quote(text),
			Type:  reflect.TypeOf(0),
		}
	}

	if n != math.Trunc(n) {
		return &json.UnmarshalTypeError{
			Value: "fractional value " + strconv.Quote(text),
			Type:  reflect.TypeOf(0),
		}
	}

	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}
