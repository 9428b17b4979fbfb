// Package checkout validates the delivery form and computes order totals.
package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

// DeliveryCharge is the flat fee added to every order.
var DeliveryCharge = decimal.NewFromInt(150)

var (
	phonePattern = regexp.MustCompile(`^(98|97)\d{8}$`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
)

const (
	minWard = 1
	maxWard = 35
)

type DeliveryForm struct {
	FullName     string `json:"full_name" validate:"required"`
	Phone        string `json:"phone" validate:"required,np_phone"`
	Email        string `json:"email" validate:"required,loose_email"`
	Province     string `json:"province" validate:"required"`
	District     string `json:"district" validate:"required"`
	Municipality string `json:"municipality" validate:"required"`
	Ward         string `json:"ward" validate:"required,ward"`
	Tole         string `json:"tole" validate:"required"`
	Landmark     string `json:"landmark"`
	Instructions string `json:"instructions"`
}

func (f DeliveryForm) Address() model.DeliveryAddress {
	return model.DeliveryAddress{
		Province:     strings.TrimSpace(f.Province),
		District:     strings.TrimSpace(f.District),
		Municipality: strings.TrimSpace(f.Municipality),
		Ward:         strings.TrimSpace(f.Ward),
		Tole:         strings.TrimSpace(f.Tole),
		Landmark:     strings.TrimSpace(f.Landmark),
		Instructions: strings.TrimSpace(f.Instructions),
	}
}

// FieldErrors maps a form field (json name) to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid delivery form: " + strings.Join(parts, "; ")
}

var messages = map[string]map[string]string{
	"full_name":    {"required": "Full name is required"},
	"phone":        {"required": "Phone number is required", "np_phone": "Please enter a valid 10-digit Nepali phone number (starting with 98 or 97)"},
	"email":        {"required": "Email is required", "loose_email": "Please enter a valid email address"},
	"province":     {"required": "Province is required"},
	"district":     {"required": "District is required"},
	"municipality": {"required": "Municipality/VDC is required"},
	"ward":         {"required": "Ward number is required", "ward": "Ward must be between 1-35"},
	"tole":         {"required": "Tole/Area is required"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("np_phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ward", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n >= minWard && n <= maxWard
	})
	return v
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Validate trims the form and reports every failing field at once. The phone
// is matched as typed; surrounding spaces make it invalid.
func Validate(form DeliveryForm) error {
	phone := form.Phone
	if strings.TrimSpace(phone) == "" {
		phone = ""
	}
	trimmed := DeliveryForm{
		FullName:     strings.TrimSpace(form.FullName),
		Phone:        phone,
		Email:        strings.TrimSpace(form.Email),
		Province:     strings.TrimSpace(form.Province),
		District:     strings.TrimSpace(form.District),
		Municipality: strings.TrimSpace(form.Municipality),
		Ward:         strings.TrimSpace(form.Ward),
		Tole:         strings.TrimSpace(form.Tole),
	}
	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}

// Totals returns subtotal, the delivery charge and their sum.
func Totals(items []model.CartItem) (subtotal, charge, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal, DeliveryCharge, subtotal.Add(DeliveryCharge)
}
