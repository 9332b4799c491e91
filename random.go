package slidecheck

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Rand is the source of randomness for notch placement and background
// selection. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed Rand for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// intRange is a half-open integer interval [lo, hi).
type intRange struct {
	lo, hi int
}

// positionBounds computes the integer ranges the notch's left and top edges
// are drawn from. With bleed = w/2:
//
//	left in [w + bleed, W - 2w + bleed)
//	top  in [bleed,     H - 2h + bleed)
//
// Fractional bounds are snapped up, so every integer in the result satisfies
// the closed lower bound and the open upper bound of the real interval.
func positionBounds(wrapperW, wrapperH, w, h float64) (intRange, intRange, error) {
	bleed := w / 2
	x := intRange{
		lo: int(math.Ceil(w + bleed)),
		hi: int(math.Ceil(wrapperW - 2*w + bleed)),
	}
	y := intRange{
		lo: int(math.Ceil(bleed)),
		hi: int(math.Ceil(wrapperH - 2*h + bleed)),
	}
	if x.hi <= x.lo || y.hi <= y.lo {
		return x, y, fmt.Errorf("%w: %vx%v wrapper cannot fit a %vx%v notch",
			ErrInvalidLayout, wrapperW, wrapperH, w, h)
	}
	return x, y, nil
}

// RandomPosition picks a notch position inside a wrapperW x wrapperH
// background for a w x h piece. The notch is kept at least one piece width
// away from the left edge so it never overlaps the piece's starting slot,
// and far enough from the right and bottom edges that the whole shape,
// including its tabs, stays visible.
func RandomPosition(rng Rand, wrapperW, wrapperH, w, h float64) (left, top int, err error) {
	x, y, err := positionBounds(wrapperW, wrapperH, w, h)
	if err != nil {
		return 0, 0, err
	}
	left = x.lo + rng.IntN(x.hi-x.lo)
	top = y.lo + rng.IntN(y.hi-y.lo)
	return left, top, nil
}

// RandomImage picks one of images uniformly.
func RandomImage(rng Rand, images []string) (string, error) {
	if len(images) == 0 {
		return "", ErrNoImages
	}
	return images[rng.IntN(len(images))], nil
}
