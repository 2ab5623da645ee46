package payments

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339",
			input: "2026-01-10T08:30:00Z",
			want:  time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "plain date",
			input: "2026-01-10",
			want:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{name: "garbage", input: "10/01/2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPaymentPayloadValidation(t *testing.T) {
	base := paymentPayload{
		StudentID:  "6f1c2b51-9a77-4a43-8a20-3b1be94d7f10",
		Amount:     5000,
		ValidFrom:  "2026-01-10",
		ValidUntil: "2027-01-10",
	}

	tests := []struct {
		name    string
		mutate  func(p *paymentPayload)
		wantErr bool
	}{
		{name: "valid minimal", mutate: func(p *paymentPayload) {}},
		{name: "valid with status", mutate: func(p *paymentPayload) { p.Status = "VALID" }},
		{name: "bad status", mutate: func(p *paymentPayload) { p.Status = "CANCELLED" }, wantErr: true},
		{name: "zero amount", mutate: func(p *paymentPayload) { p.Amount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(p *paymentPayload) { p.Amount = -10 }, wantErr: true},
		{name: "bad student id", mutate: func(p *paymentPayload) { p.StudentID = "42" }, wantErr: true},
		{name: "missing window", mutate: func(p *paymentPayload) { p.ValidUntil = "" }, wantErr: true},
		{name: "bad currency", mutate: func(p *paymentPayload) { p.Currency = "FRANCS" }, wantErr: true},
		{name: "good currency", mutate: func(p *paymentPayload) { p.Currency = "XOF" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := validate.Struct(&p)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate.Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdatePaymentStatusRejectsBadStatus(t *testing.T) {
	app := fiber.New()
	app.Patch("/payments/:paymentId/status", UpdatePaymentStatusAPI)

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown status", body: `{"status":"APPROVED"}`},
		{name: "lowercase", body: `{"status":"valid"}`},
		{name: "cancel via status endpoint", body: `{"status":"CANCELLED"}`},
		{name: "missing status", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PATCH", "/payments/p1/status", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			// Rejection happens before any database access.
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
			}
		})
	}
}
