package render

import (
	"errors"
	"strconv"

	"github.com/MrEthical07/goCaptcha/internal"
)

// Kind mirrors the public challenge kinds without importing the root package.
type Kind uint8

const (
	KindText Kind = iota
	KindMath
	KindDigits
)

// Content is a generated challenge pair: Display is what the artifact shows,
// Answer is the expected solution. For text and digit kinds the two are
// equal; for the arithmetic kind Display carries the expression.
type Content struct {
	Answer  string
	Display string
}

// NewContent generates the plaintext side of a challenge. Length applies to
// the text and digit kinds only; the arithmetic kind ignores it.
func NewContent(kind Kind, length int) (Content, error) {
	switch kind {
	case KindText:
		if length <= 0 {
			return Content{}, errors.New("text challenge length must be > 0")
		}
		s, err := internal.RandomString(internal.TextAlphabet, length)
		if err != nil {
			return Content{}, err
		}
		return Content{Answer: s, Display: s}, nil

	case KindDigits:
		if length <= 0 {
			return Content{}, errors.New("digit challenge length must be > 0")
		}
		s, err := internal.RandomDigits(length)
		if err != nil {
			return Content{}, err
		}
		return Content{Answer: s, Display: s}, nil

	case KindMath:
		return newMathContent()

	default:
		return Content{}, errors.New("unsupported render kind")
	}
}

// newMathContent builds a two-operand expression whose result is a
// non-negative integer. Subtraction operands are swapped when needed so the
// answer never carries a sign.
func newMathContent() (Content, error) {
	a, err := internal.RandomInt(40)
	if err != nil {
		return Content{}, err
	}
	a += 10

	b, err := internal.RandomInt(9)
	if err != nil {
		return Content{}, err
	}
	b++

	op, err := internal.RandomInt(2)
	if err != nil {
		return Content{}, err
	}

	var (
		result int
		symbol string
	)
	if op == 0 {
		result = a + b
		symbol = "+"
	} else {
		if b > a {
			a, b = b, a
		}
		result = a - b
		symbol = "-"
	}

	display := strconv.Itoa(a) + " " + symbol + " " + strconv.Itoa(b) + " = ?"
	return Content{Answer: strconv.Itoa(result), Display: display}, nil
}
