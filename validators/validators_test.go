package validators

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	Quantity int `json:"quantity" binding:"min=1"`
}

type sample struct {
	Name   string `json:"cardholderName" binding:"required,notblank"`
	Number string `json:"cardNumber" binding:"required,cardnumber"`
	Date   string `json:"expirationDate" binding:"required,datetime=2006-01-02"`
	Items  []line `json:"items" binding:"required,min=1,dive"`
}

func TestRulesAndMessages(t *testing.T) {
	Register()
	Register()

	tests := []struct {
		name   string
		input  sample
		fields map[string]string
	}{
		{
			name:  "valid",
			input: sample{Name: "Ada", Number: "4532015112830366", Date: "2030-01-31", Items: []line{{Quantity: 1}}},
		},
		{
			name:   "blank name",
			input:  sample{Name: "   ", Number: "4532015112830366", Date: "2030-01-31", Items: []line{{Quantity: 1}}},
			fields: map[string]string{"cardholderName": "cardholderName must not be blank"},
		},
		{
			name:   "short number",
			input:  sample{Name: "Ada", Number: "4532", Date: "2030-01-31", Items: []line{{Quantity: 1}}},
			fields: map[string]string{"cardNumber": "Card number must be exactly 16 digits"},
		},
		{
			name:   "letters in number",
			input:  sample{Name: "Ada", Number: "4532a15112830366", Date: "2030-01-31", Items: []line{{Quantity: 1}}},
			fields: map[string]string{"cardNumber": "Card number must be exactly 16 digits"},
		},
		{
			name:   "bad date",
			input:  sample{Name: "Ada", Number: "4532015112830366", Date: "31/01/2030", Items: []line{{Quantity: 1}}},
			fields: map[string]string{"expirationDate": "expirationDate must be a date in YYYY-MM-DD format"},
		},
		{
			name:   "nested item",
			input:  sample{Name: "Ada", Number: "4532015112830366", Date: "2030-01-31", Items: []line{{Quantity: 0}}},
			fields: map[string]string{"items[0].quantity": "items[0].quantity must be at least 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.input)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, Messages(err))
		})
	}
}

func TestMessagesIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, Messages(errors.New("boom")))
	assert.Nil(t, Messages(nil))
}
