package domain

import "math"

// cnum is a complex value carried as an explicit pair of reals. The weighting
// cascade only needs add, multiply, divide, and magnitude, and keeping the
// arithmetic spelled out makes the transfer-function evaluation directly
// comparable against the reference formulation.
type cnum struct {
	re, im float64
}

func creal(re float64) cnum { return cnum{re: re} }

// cimag returns the purely imaginary value i·im; s = cimag(ω) evaluates a
// transfer function on the frequency axis.
func cimag(im float64) cnum { return cnum{im: im} }

func (a cnum) add(b cnum) cnum {
	return cnum{re: a.re + b.re, im: a.im + b.im}
}

func (a cnum) mul(b cnum) cnum {
	return cnum{
		re: a.re*b.re - a.im*b.im,
		im: a.re*b.im + a.im*b.re,
	}
}

func (a cnum) div(b cnum) cnum {
	d := b.re*b.re + b.im*b.im
	return cnum{
		re: (a.re*b.re + a.im*b.im) / d,
		im: (a.im*b.re - a.re*b.im) / d,
	}
}

func (a cnum) scale(k float64) cnum {
	return cnum{re: k * a.re, im: k * a.im}
}

func (a cnum) abs() float64 {
	return math.Hypot(a.re, a.im)
}
