package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kohai/gamecredit/internal/core/domain"
)

// response is a loosely typed vendor body. The vendor reports outcomes in
// several shapes, so fields are read through helpers instead of a struct.
type response map[string]any

func decodeResponse(body []byte) (response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var r response
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func (r response) str(key string) string {
	return asString(r[key])
}

func (r response) code(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.str(key)))
	if err != nil {
		return 0
	}
	return n
}

func (r response) object(key string) response {
	if m, ok := r[key].(map[string]any); ok {
		return response(m)
	}
	return response{}
}

func (r response) list(key string) []response {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]response, 0, len(items))
	for _, i := range items {
		if m, ok := i.(map[string]any); ok {
			out = append(out, response(m))
		}
	}
	return out
}

func (r response) message() string {
	for _, key := range []string{"message", "msg", "error", "errorMessage"} {
		if v := r.str(key); v != "" {
			return v
		}
	}
	return ""
}

// successful accepts any of: success:true, status "success", a 2xx
// statusCode, or a message mentioning "successful".
func (r response) successful() bool {
	if b, ok := r["success"].(bool); ok && b {
		return true
	}
	if strings.EqualFold(r.str("status"), "success") {
		return true
	}
	if code := r.code("statusCode"); code >= 200 && code <= 299 {
		return true
	}
	return strings.Contains(strings.ToLower(r.str("message")), "successful")
}

func (r response) maintenance(httpStatus int) bool {
	return httpStatus == http.StatusUnprocessableEntity ||
		r.code("statusCode") == http.StatusUnprocessableEntity ||
		strings.EqualFold(r.str("error"), "maintenance")
}

func (r response) trackingNumber() string {
	if v := r.object("data").str("invoiceId"); v != "" {
		return v
	}
	return r.str("orderId")
}

func isDuplicate(text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, "duplicate") || strings.Contains(t, "already exists")
}

// normalize maps a vendor body onto a single typed outcome.
func normalize(httpStatus int, body []byte) *domain.VendorResult {
	res := &domain.VendorResult{StatusCode: httpStatus, Raw: json.RawMessage(body)}

	r, err := decodeResponse(body)
	if err != nil {
		res.Raw = nil
		res.Outcome = domain.VendorOutcomeFailure
		res.Message = fmt.Sprintf("invalid JSON from provider (%d)", httpStatus)
		return res
	}

	switch {
	case r.maintenance(httpStatus):
		res.Outcome = domain.VendorOutcomeMaintenance
		res.Message = domain.ErrVendorMaintenance.Error()
	case r.successful():
		res.Outcome = domain.VendorOutcomeSuccess
		res.TrackingNumber = r.trackingNumber()
		res.InvoiceID = r.object("data").str("invoiceId")
		res.Message = r.str("message")
	default:
		res.Outcome = domain.VendorOutcomeFailure
		res.Message = r.message()
		if res.Message == "" {
			res.Message = "order creation failed"
		}
	}

	return res
}
