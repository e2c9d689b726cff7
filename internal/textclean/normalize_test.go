package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var samples = []string{
	"",
	"   ",
	"Invoice Total 42.50",
	"  Invoice\tTotal:\n\n$42.50 | ©2024  ",
	"a b​c",
	"héllo wörld — naïve café",
	"line1\r\nline2\fline3\vline4",
	"***\x00\x07bell",
	"1,234.56, and. more..",
	"日本語テキスト abc",
	"Invoice\u00a0Total\u2028Due\x1f",
}

func TestNormalizeExamples(t *testing.T) {
	assert.Equal(t, "Invoice Total 42.50 2024", Normalize("  Invoice\tTotal:\n\n$42.50 | ©2024  "))
	assert.Equal(t, "hllo wrld nave caf", Normalize("héllo wörld — naïve café"))
	assert.Equal(t, "line1 line2 line3 line4", Normalize("line1\r\nline2\fline3\vline4"))
	assert.Equal(t, "bell", Normalize("***\x00\x07bell"))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "abc", Normalize("日本語テキスト abc"))
}

func TestNormalizeUnicodeWhitespaceSeparatesWords(t *testing.T) {
	assert.Equal(t, "Invoice Total", Normalize("Invoice\u00a0Total"))
	assert.Equal(t, "Total Due", Normalize("Total\u2028Due"))
	assert.Equal(t, "A B", Normalize("A\x1cB"))
	assert.Equal(t, "x y", Normalize("x\u3000\u2003y"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, s := range samples {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input=%q", s)
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	for _, s := range samples {
		out := Normalize(s)
		for _, r := range out {
			ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
				r == ' ' || r == '.' || r == ','
			assert.True(t, ok, "unexpected %q in %q", r, out)
		}
		assert.NotContains(t, out, "  ")
		if out != "" {
			assert.NotEqual(t, ' ', rune(out[0]))
			assert.NotEqual(t, ' ', rune(out[len(out)-1]))
		}
	}
}
