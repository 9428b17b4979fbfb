package checkout

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/carcare-storefront/internal/model"
)

func validForm() DeliveryForm {
	return DeliveryForm{
		FullName: "Sita Sharma", Phone: "9812345678", Email: "sita@example.com",
		Province: "Bagmati Province", District: "Kathmandu", Municipality: "Kathmandu Metropolitan",
		Ward: "10", Tole: "Baneshwor",
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9812345678", true},
		{"9712345678", true},
		{"1234567890", false},
		{"98123", false},
		{"98123456789", false},
		{"9612345678", false},
		{"98abcdefgh", false},
		{" 9812345678", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPhone(tt.phone), tt.phone)
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate(validForm()))
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	f := validForm()
	f.Landmark = ""
	f.Instructions = ""
	assert.NoError(t, Validate(f))
}

func TestValidate_ReportsEveryField(t *testing.T) {
	err := Validate(DeliveryForm{Phone: "1234567890", Email: "nope"})

	var fields FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Equal(t, "Full name is required", fields["full_name"])
	assert.Equal(t, "Please enter a valid 10-digit Nepali phone number (starting with 98 or 97)", fields["phone"])
	assert.Equal(t, "Please enter a valid email address", fields["email"])
	assert.Equal(t, "Province is required", fields["province"])
	assert.Equal(t, "District is required", fields["district"])
	assert.Equal(t, "Municipality/VDC is required", fields["municipality"])
	assert.Equal(t, "Ward number is required", fields["ward"])
	assert.Equal(t, "Tole/Area is required", fields["tole"])
	assert.NotContains(t, fields, "landmark")
}

func TestValidate_WhitespaceIsEmpty(t *testing.T) {
	f := validForm()
	f.FullName = "   "
	f.Phone = "  "

	var fields FieldErrors
	require.True(t, errors.As(Validate(f), &fields))
	assert.Equal(t, "Full name is required", fields["full_name"])
	assert.Equal(t, "Phone number is required", fields["phone"])
	assert.Len(t, fields, 2)
}

func TestValidate_PhoneIsNotTrimmed(t *testing.T) {
	for _, phone := range []string{" 9812345678 ", "9812345678 ", "\t9712345678"} {
		f := validForm()
		f.Phone = phone
		var fields FieldErrors
		require.True(t, errors.As(Validate(f), &fields), phone)
		assert.Equal(t, "Please enter a valid 10-digit Nepali phone number (starting with 98 or 97)", fields["phone"])
		assert.Len(t, fields, 1)
	}
}

func TestValidate_WardRange(t *testing.T) {
	for _, ward := range []string{"0", "36", "ten"} {
		f := validForm()
		f.Ward = ward
		var fields FieldErrors
		require.True(t, errors.As(Validate(f), &fields), ward)
		assert.Equal(t, "Ward must be between 1-35", fields["ward"])
	}
}

func TestTotals_AddsDeliveryCharge(t *testing.T) {
	items := []model.CartItem{
		{ID: uuid.New(), ProductPrice: decimal.NewFromInt(900), Quantity: 2},
		{ID: uuid.New(), ProductPrice: decimal.NewFromInt(2499), Quantity: 1},
	}
	subtotal, charge, total := Totals(items)
	assert.True(t, decimal.NewFromInt(4299).Equal(subtotal))
	assert.True(t, decimal.NewFromInt(150).Equal(charge))
	assert.True(t, subtotal.Add(charge).Equal(total))
	assert.True(t, decimal.NewFromInt(4449).Equal(total))
}

func TestTotals_EmptyCart(t *testing.T) {
	subtotal, charge, total := Totals(nil)
	assert.True(t, subtotal.IsZero())
	assert.True(t, charge.Equal(total))
}
