package deriv

import (
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"x",
		"x^2^3",
		"(x+1)^2",
		"2*sin(x)^2 - ln(x)/x",
		"arcsec(x^x)",
		"1/(x-x)",
		"((",
		"-.5^-x",
		"e^pi",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, src string) {
		n, err := ParseString(src)
		if err != nil {
			var ierr InputError
			if !errors.As(err, &ierr) {
				t.Errorf("%q: error %v is not an InputError", src, err)
			}
			return
		}
		// Neither simplifying nor differentiating a parsed tree may fail
		// except by division by zero.
		if _, err := Simplify(n); err != nil && !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%q: simplify: %v", src, err)
		}
		if _, err := Derive(n); err != nil && !errors.Is(err, ErrDivideByZero) {
			t.Errorf("%q: derive: %v", src, err)
		}
	})
}
