package sdkerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected string
	}{
		{NewUnknownDiscriminatorError("ComputeBudget", []byte{9}), "unknown ComputeBudget instruction discriminator: 09"},
		{NewAccountCountError("executePostedVaa", 5, 2), "executePostedVaa expects at least 5 accounts, got 2"},
		{NewTooManyInstructionsError(256, 255), "too many instructions: 256, a proposal can only support 255"},
		{NewInvalidAccountDataError("multisig", "short"), "invalid account data for multisig: short"},
		{NewUnrecognizedInstructionError("Unknown", "11111111111111111111111111111111"), "unrecognized Unknown instruction for program 11111111111111111111111111111111"},
		{ErrBuilderFinalized, "builder already finalized"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}
