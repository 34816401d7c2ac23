package chip8

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing(t *testing.T) {
	src := `# draw a digit
0x200 0x63
0x201 0x05

202 d1
0x203 0X05
`
	l, err := ParseListing(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, Listing{
		{0x200, 0x63},
		{0x201, 0x05},
		{0x202, 0xD1},
		{0x203, 0x05},
	}, l)
}

func TestParseListingErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		src    string
		lineNo int
		err    error
	}{
		{"bad address", "0x200 0x00\nzz 0x01\n", 2, ErrInvalidAddress},
		{"missing data", "0x200\n", 1, ErrMissingData},
		{"bad data", "0x200 0x100\n", 1, ErrInvalidData},
		{"too low", "0x1FF 0x00\n", 1, ErrAddressTooLow},
		{"too high", "\n\n0x1000 0x00\n", 3, ErrAddressOutOfRange},
	}

	for _, entry := range table {
		_, err := ParseListing(strings.NewReader(entry.src))
		assert.ErrorIs(err, entry.err, entry.name)

		var se *SyntaxError
		if assert.True(errors.As(err, &se), entry.name) {
			assert.Equal(entry.lineNo, se.LineNo, entry.name)
		}
	}
}

func TestParseListingTooLarge(t *testing.T) {
	var b strings.Builder
	for range MaxProgramSize + 1 {
		b.WriteString("0x200 0x00\n")
	}

	_, err := ParseListing(strings.NewReader(b.String()))
	assert.ErrorIs(t, err, ErrProgramTooLarge)
}

func TestIsListing(t *testing.T) {
	assert.True(t, IsListing([]byte("0x200 0x63\n0x201 0x05\n")))
	assert.False(t, IsListing([]byte{0x63, 0x05, 0xD1, 0x05}))
	assert.False(t, IsListing(nil))
}
