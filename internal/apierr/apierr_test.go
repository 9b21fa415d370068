package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func writeBody(t *testing.T, debug bool, err error) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	Write(rec, zerolog.Nop(), debug, err)
	var body map[string]any
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("body is not json: %v", decodeErr)
	}
	return rec.Code, body
}

func TestWriteClassifiedError(t *testing.T) {
	status, body := writeBody(t, false, PaymentRequired("an active subscription is required"))
	if status != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", status)
	}
	if body["error"] != "payment_required" || body["message"] != "an active subscription is required" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWriteMasksUnclassifiedError(t *testing.T) {
	status, body := writeBody(t, false, errors.New("dial tcp 10.0.0.5:27017: i/o timeout"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"] != "internal_error" {
		t.Errorf("unexpected code %v", body["error"])
	}
	if _, present := body["details"]; present {
		t.Error("internal detail must not leak without debug")
	}
	if strings.Contains(fmt.Sprint(body), "10.0.0.5") {
		t.Error("internal detail must not leak without debug")
	}
}

func TestWriteDebugExposesDetail(t *testing.T) {
	_, body := writeBody(t, true, errors.New("dial tcp 10.0.0.5:27017: i/o timeout"))
	if body["details"] != "dial tcp 10.0.0.5:27017: i/o timeout" {
		t.Errorf("expected the raw detail in debug mode, got %v", body["details"])
	}
}

func TestWriteClassifiedDetailsPassThrough(t *testing.T) {
	status, body := writeBody(t, false, Validation("request validation failed", "ConversationText is required"))
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if body["details"] != "ConversationText is required" {
		t.Errorf("classified details must pass through: %v", body)
	}
}

func TestAsUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("analysis not found"))
	apiErr, ok := As(wrapped)
	if !ok || apiErr.Code != "not_found" {
		t.Fatalf("expected wrapped not_found, got %v %v", apiErr, ok)
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Error("plain errors must not classify")
	}
}
