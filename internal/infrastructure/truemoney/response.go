package truemoney

import "github.com/tidwall/gjson"

// The provider has shipped several response shapes over time. Success and
// amount are therefore read through ordered rule lists instead of a fixed
// schema: the first rule that fires wins.

type successRule struct {
	path string
	ok   func(gjson.Result) bool
}

var successRules = []successRule{
	{"success", func(r gjson.Result) bool { return r.Type == gjson.True }},
	{"status", func(r gjson.Result) bool { return r.String() == "success" }},
	{"status.code", func(r gjson.Result) bool { return r.String() == "SUCCESS" }},
	{"status.message", func(r gjson.Result) bool { return r.String() == "success" }},
	{"code", func(r gjson.Result) bool { return r.Int() == 200 }},
	{"data.voucher.amount_baht", func(r gjson.Result) bool { return r.Float() > 0 }},
}

// Amount field locations in priority order. Older shapes spelled the field
// "amount_bath"; that is the provider's typo, not ours.
var amountPaths = []string{
	"data.voucher.amount_baht",
	"data.voucher.redeemed_amount_baht",
	"data.my_ticket.amount_baht",
	"amount_bath",
	"amount",
	"value",
	"money",
	"data.amount_bath",
	"data.amount",
}

var messagePaths = []string{
	"message",
	"error",
	"status.message",
}

// isSuccess reports whether any known success signal fires for the body.
func isSuccess(body []byte) bool {
	for _, rule := range successRules {
		if r := gjson.GetBytes(body, rule.path); r.Exists() && rule.ok(r) {
			return true
		}
	}
	return false
}

// extractAmount returns the voucher amount from the first known field present
// in the body. found is false when no field matched; the caller treats the
// zero amount as a validation failure and counts the miss.
func extractAmount(body []byte) (amount float64, found bool) {
	for _, path := range amountPaths {
		if r := gjson.GetBytes(body, path); r.Exists() {
			return r.Float(), true
		}
	}
	return 0, false
}

// failureMessage picks the best human-readable message out of a failure body.
func failureMessage(body []byte) string {
	for _, path := range messagePaths {
		if r := gjson.GetBytes(body, path); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
