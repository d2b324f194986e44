package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt is an integer body field that also accepts numeric strings ("30").
// Null, absent and empty-string values leave it unset.
type FlexInt struct {
	Value int64
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var text string
	switch v := raw.(type) {
	case nil:
		*f = FlexInt{}
		return nil
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
		if text == "" {
			*f = FlexInt{}
			return nil
		}
	default:
		return fmt.Errorf("expected a number, got %s", b)
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) || n != math.Trunc(n) {
		return fmt.Errorf("expected a whole number, got %s", b)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if n >= math.MaxInt64 || n < math.MinInt64 {
		return fmt.Errorf("number out of range: %s", b)
	}
	*f = FlexInt{Value: int64(n), Set: true}
	return nil
}

// Int returns the value as *int, nil when unset.
func (f FlexInt) Int() *int {
	if !f.Set {
		return nil
	}
	v := int(f.Value)
	return &v
}

// ID returns the value as an identifier; unset and non-positive values give 0.
func (f FlexInt) ID() uint {
	if !f.Set || f.Value <= 0 {
		return 0
	}
	return uint(f.Value)
}
