package keypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bogusIntent struct{}

func (bogusIntent) intent() {}

func TestReduce_UnknownIntentPanics(t *testing.T) {
	assert.PanicsWithError(t, "unknown intent type: keypad.bogusIntent", func() {
		Reduce(Empty(), bogusIntent{})
	})
}

func TestWithDisplay_CopiesExpression(t *testing.T) {
	s := Run("1", "+")
	next := s.withDisplay("2")

	next.Expression.Operator = "-"
	assert.Equal(t, "+", string(s.Expression.Operator))
}
