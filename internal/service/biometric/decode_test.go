package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDuration(t *testing.T) {
	cases := []struct {
		raw     string
		minutes int
		ok      bool
	}{
		{"63:33", 3813, true},
		{"0:05", 5, true},
		{" 8:00 ", 480, true},
		{"", 0, true},
		{"-", 0, true},
		{"abc", 0, false},
		{"-1:30", 0, false},
		{"1:75", 0, false},
		{"12", 0, false},
		{"999999999999999999:00", 0, false},
		{"35791394:07", 2147483647, true},
		{"35791395:00", 0, false},
	}
	for _, c := range cases {
		minutes, ok := DecodeDuration(c.raw)
		if minutes != c.minutes || ok != c.ok {
			t.Errorf("DecodeDuration(%q) = (%d, %v), want (%d, %v)", c.raw, minutes, ok, c.minutes, c.ok)
		}
	}
}

func TestDecodeDayPair(t *testing.T) {
	scheduled, actual, ok := DecodeDayPair("10/9")
	assert.True(t, ok)
	assert.Equal(t, 10, scheduled)
	assert.Equal(t, 9, actual)

	scheduled, actual, ok = DecodeDayPair(" 22 / 20 ")
	assert.True(t, ok)
	assert.Equal(t, 22, scheduled)
	assert.Equal(t, 20, actual)

	scheduled, actual, ok = DecodeDayPair("diez/nueve")
	assert.False(t, ok)
	assert.Zero(t, scheduled)
	assert.Zero(t, actual)

	_, _, ok = DecodeDayPair("-")
	assert.True(t, ok)

	scheduled, actual, ok = DecodeDayPair("20/99999999999")
	assert.False(t, ok)
	assert.Zero(t, scheduled)
	assert.Zero(t, actual)
}

func TestDecodeName(t *testing.T) {
	assert.Equal(t, "JUAN CARLOS PEREZ", DecodeName("JUAN~CARLOS~PEREZ"))
	assert.Equal(t, "ANA", DecodeName(" ANA~ "))
	assert.Equal(t, "", DecodeName(""))
}

func TestDecodeCount(t *testing.T) {
	cases := []struct {
		raw string
		n   int
		ok  bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{"", 0, true},
		{"-", 0, true},
		{"2.5", 0, false},
		{"-4", 0, false},
		{"x", 0, false},
		{"2147483647", 2147483647, true},
		{"1000000000000000000", 0, false},
		{"1e18", 0, false},
	}
	for _, c := range cases {
		n, ok := DecodeCount(c.raw)
		if n != c.n || ok != c.ok {
			t.Errorf("DecodeCount(%q) = (%d, %v), want (%d, %v)", c.raw, n, ok, c.n, c.ok)
		}
	}
}
