package payments

import (
	"strings"
	"sync"
	"unicode"

	"github.com/ameedanxari/menumaker-backend/pkg/enums"
)

// Field error messages, keyed by the setter that produces them.
const (
	msgCardNumberInvalid = "card number must be 13 to 19 digits"
	msgExpiryInvalid     = "expiry must be MM/YY"
	msgCVVInvalid        = "cvv must be 3 or 4 digits"
	msgHolderRequired    = "cardholder name is required"
	msgUPIInvalid        = "upi id must look like name@bank"
)

const (
	maxCardDigits = 19
	minCardDigits = 13
	maxCVVDigits  = 4
	minCVVDigits  = 3
)

// Draft is the mutable payment form for one checkout session. Setters
// normalize their input eagerly and record a per-field error message, so the
// form can render feedback on every keystroke rather than on submit. Switching
// the method keeps already entered values; Reset clears everything.
type Draft struct {
	mu sync.Mutex

	method enums.PaymentMethod

	cardNumber string
	expiry     string
	cvv        string
	holder     string
	upiID      string
	saveCard   bool

	errors map[string]string
}

// NewDraft starts a form defaulting to cash, which needs no details.
func NewDraft() *Draft {
	return &Draft{method: enums.PaymentMethodCash, errors: map[string]string{}}
}

// SetMethod switches the active payment method. Entered values and their
// field errors survive the switch; only the active method's fields gate
// CanSubmit.
func (d *Draft) SetMethod(method enums.PaymentMethod) {
	if !method.IsValid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.method = method
}

// Method returns the active payment method.
func (d *Draft) Method() enums.PaymentMethod {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.method
}

// SetCardNumber strips every non-digit rune and truncates to 19 digits before
// storing. A number outside 13 to 19 digits records a field error.
func (d *Draft) SetCardNumber(raw string) {
	digits := digitsOnly(raw, maxCardDigits)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cardNumber = digits
	if len(digits) < minCardDigits {
		d.errors["card_number"] = msgCardNumberInvalid
	} else {
		delete(d.errors, "card_number")
	}
}

// SetExpiry stores the raw value and validates the MM/YY shape. Months run 01
// through 12. Whether the date is in the past is deliberately not checked.
func (d *Draft) SetExpiry(raw string) {
	value := strings.TrimSpace(raw)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.expiry = value
	if validExpiry(value) {
		delete(d.errors, "expiry")
	} else {
		d.errors["expiry"] = msgExpiryInvalid
	}
}

// SetCVV strips non-digits and truncates to 4 digits before storing.
func (d *Draft) SetCVV(raw string) {
	digits := digitsOnly(raw, maxCVVDigits)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cvv = digits
	if len(digits) < minCVVDigits {
		d.errors["cvv"] = msgCVVInvalid
	} else {
		delete(d.errors, "cvv")
	}
}

// SetHolder stores the cardholder name; a blank name records a field error.
func (d *Draft) SetHolder(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.holder = raw
	if strings.TrimSpace(raw) == "" {
		d.errors["holder"] = msgHolderRequired
	} else {
		delete(d.errors, "holder")
	}
}

// SetUPIID stores the UPI id. Valid ids split on exactly one '@' into two
// non-empty parts that contain no whitespace.
func (d *Draft) SetUPIID(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.upiID = raw
	if validUPI(raw) {
		delete(d.errors, "upi_id")
	} else {
		d.errors["upi_id"] = msgUPIInvalid
	}
}

// SetSaveCard records whether the card should be kept for future checkouts.
// The flag is advisory and never gates CanSubmit.
func (d *Draft) SetSaveCard(save bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saveCard = save
}

// SaveCard reports whether the card should be kept for future checkouts.
func (d *Draft) SaveCard() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveCard
}

// CardNumber returns the normalized digits entered so far.
func (d *Draft) CardNumber() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cardNumber
}

// FieldError returns the current message for a field ("" when the field is
// valid or untouched).
func (d *Draft) FieldError(field string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errors[field]
}

// FieldErrors returns a copy of every recorded field error.
func (d *Draft) FieldErrors() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.errors))
	for field, msg := range d.errors {
		out[field] = msg
	}
	return out
}

// CanSubmit reports whether the active method's fields are complete and valid.
// Cash always submits. Fields belonging to inactive methods are ignored.
func (d *Draft) CanSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.method {
	case enums.PaymentMethodCash:
		return true
	case enums.PaymentMethodCard:
		return len(d.cardNumber) >= minCardDigits &&
			validExpiry(d.expiry) &&
			len(d.cvv) >= minCVVDigits &&
			strings.TrimSpace(d.holder) != ""
	case enums.PaymentMethodUPI:
		return validUPI(d.upiID)
	default:
		return false
	}
}

// Reset clears every field, every error, and returns the method to cash.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.method = enums.PaymentMethodCash
	d.cardNumber = ""
	d.expiry = ""
	d.cvv = ""
	d.holder = ""
	d.upiID = ""
	d.saveCard = false
	d.errors = map[string]string{}
}

// digitsOnly keeps decimal digits from raw, up to max of them.
func digitsOnly(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}

func validExpiry(value string) bool {
	if len(value) != 5 || value[2] != '/' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	month := int(value[0]-'0')*10 + int(value[1]-'0')
	return month >= 1 && month <= 12
}

func validUPI(value string) bool {
	if value == "" {
		return false
	}
	at := strings.Count(value, "@")
	if at != 1 {
		return false
	}
	parts := strings.SplitN(value, "@", 2)
	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			if unicode.IsSpace(r) {
				return false
			}
		}
	}
	return true
}
