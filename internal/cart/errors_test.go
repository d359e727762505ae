package cart

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	assert.Equal(t,
		"ITEM_NOT_FOUND: item must exist in order to update quantity (action=QUANTITY, sku=B2)",
		newItemNotFound("B2").Error())
	assert.Equal(t,
		`UNKNOWN_ACTION_TYPE: unidentified action type "DISCOUNT" (action=DISCOUNT)`,
		newUnknownActionType("DISCOUNT").Error())
	assert.Equal(t,
		`UNKNOWN_ACTION_TYPE: unidentified action type ""`,
		newUnknownActionType("").Error())
}

func TestErrorHelpers_Wrapped(t *testing.T) {
	tests := []struct {
		err  error
		code ErrorCode
		is   func(error) bool
	}{
		{newMissingPayload(TypeAdd), ErrCodeMissingPayload, IsMissingPayload},
		{newItemNotFound("A1"), ErrCodeItemNotFound, IsItemNotFound},
		{newUnknownActionType("X"), ErrCodeUnknownActionType, IsUnknownActionType},
		{newInvalidQuantity("A1", 0), ErrCodeInvalidQuantity, IsInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			wrapped := fmt.Errorf("step 3: %w", tt.err)
			assert.Equal(t, tt.code, CodeOf(wrapped))
			assert.True(t, tt.is(wrapped))
		})
	}
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("boom")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.False(t, IsItemNotFound(errors.New("ITEM_NOT_FOUND")))
}
