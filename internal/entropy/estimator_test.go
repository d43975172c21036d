package entropy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passguard/passguard/internal/model"
	"github.com/passguard/passguard/internal/policy"
)

func TestEstimateEmptyPassword(t *testing.T) {
	e := NewEstimator(policy.Default())

	bits, flags := e.Estimate("", false)
	assert.Zero(t, bits)
	assert.Equal(t, model.CharacterClassFlags{}, flags)
}

func TestEstimateCharacterClasses(t *testing.T) {
	e := NewEstimator(policy.Default())

	tests := []struct {
		password string
		flags    model.CharacterClassFlags
	}{
		{"abcdefgh", model.CharacterClassFlags{HasLower: true, PoolSize: 26}},
		{"ABCDEFGH", model.CharacterClassFlags{HasUpper: true, PoolSize: 26}},
		{"13579246", model.CharacterClassFlags{HasDigit: true, PoolSize: 10}},
		{"!@#$%^&*", model.CharacterClassFlags{HasSpecial: true, PoolSize: 33}},
		{"Aa1!", model.CharacterClassFlags{HasLower: true, HasUpper: true, HasDigit: true, HasSpecial: true, PoolSize: 95}},
	}

	for _, tt := range tests {
		_, flags := e.Estimate(tt.password, false)
		assert.Equal(t, tt.flags, flags, "password %q", tt.password)
	}
}

func TestEstimatePoolBasedFormula(t *testing.T) {
	e := NewEstimator(policy.Default())

	bits, _ := e.Estimate("abcdefgh", false)
	assert.InDelta(t, 8*math.Log2(26), bits, 1e-9)
}

func TestEstimatePatternPenalty(t *testing.T) {
	e := NewEstimator(policy.Default())

	clean, _ := e.Estimate("abcdefgh", false)
	penalized, _ := e.Estimate("abcdefgh", true)
	assert.InDelta(t, clean*0.7, penalized, 1e-9)
	assert.Less(t, penalized, clean)
}

func TestEstimateMonotonicInLength(t *testing.T) {
	e := NewEstimator(policy.Default())

	prev := 0.0
	password := ""
	for i := 0; i < 32; i++ {
		password += "x"
		bits, _ := e.Estimate(password, false)
		assert.GreaterOrEqual(t, bits, prev)
		prev = bits
	}
}

func TestEstimateUnrecognizedClassFloorsPool(t *testing.T) {
	e := NewEstimator(policy.Default())

	// No recognized class: pool floors at 1, log2(1) = 0 bits.
	bits, flags := e.Estimate("    ", false)
	assert.Zero(t, bits)
	assert.Equal(t, 1, flags.PoolSize)
}

func TestPositionalEntropy(t *testing.T) {
	e := NewEstimator(policy.Default())

	assert.Zero(t, e.PositionalEntropy(""))
	assert.Zero(t, e.PositionalEntropy("aaaa"))

	// Two equiprobable characters: 1 bit per position.
	assert.InDelta(t, 2.0, e.PositionalEntropy("ab"), 1e-9)
}
