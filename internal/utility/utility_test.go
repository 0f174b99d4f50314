package utility

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Men's Shoes!":        "mens-shoes",
		"  Kids & Baby  ":     "kids-baby",
		"---Hello---World---": "hello-world",
		"Électronique":        "lectronique",
		"\"Quoted\" `Name`":   "quoted-name",
		"Phones 2024":         "phones-2024",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestToFloat64(t *testing.T) {
	v, err := ToFloat64("12.5")
	assert.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = ToFloat64(json.Number("3"))
	assert.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = ToFloat64("NaN")
	assert.Error(t, err)
	_, err = ToFloat64("abc")
	assert.Error(t, err)
	_, err = ToFloat64(map[string]any{})
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	b, err := ToBool("true")
	assert.NoError(t, err)
	assert.True(t, b)
	b, err = ToBool(false)
	assert.NoError(t, err)
	assert.False(t, b)
	_, err = ToBool("maybe")
	assert.Error(t, err)
}

func TestParseDateBound(t *testing.T) {
	start, ok := ParseDateBound("2024-05-01", false)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), start)

	end, ok := ParseDateBound("2024-05-01", true)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC).UnixMilli(), end)

	_, ok = ParseDateBound("yesterday", false)
	assert.False(t, ok)
}
