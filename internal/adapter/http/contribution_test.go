package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/adapter/memory"
	"github.com/ciroschultz/Renovacampo/internal/adapter/usecase"
	"github.com/ciroschultz/Renovacampo/internal/core/domain"
)

func newTestServer(t *testing.T) (*memory.LedgerStore, http.Handler) {
	t.Helper()
	store := memory.NewLedgerStore()
	ledger := usecase.NewLedgerUseCase(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(ledger, nil, nil, logger)
	return store, h.Router()
}

func seedCampaign(store *memory.LedgerStore, id int64, required, raised string) {
	store.PutCampaign(&domain.Campaign{
		ID:             id,
		Name:           "test campaign",
		PropertyID:     1,
		ProjectID:      1,
		RequiredAmount: decimal.RequireFromString(required),
		RaisedAmount:   decimal.RequireFromString(raised),
		Status:         domain.StatusActive,
		Active:         true,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdmitContributionEndpoint(t *testing.T) {
	store, router := newTestServer(t)
	seedCampaign(store, 1, "10000.00", "0")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/1/contributions",
		`{"investorId": 7, "amount": "2500.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		CampaignID             int64           `json:"campaignId"`
		InvestorID             int64           `json:"investorId"`
		Amount                 decimal.Decimal `json:"amount"`
		ShareholdingPercentage decimal.Decimal `json:"shareholdingPercentage"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CampaignID != 1 || resp.InvestorID != 7 {
		t.Fatalf("unexpected ids in %s", rec.Body)
	}
	if !resp.ShareholdingPercentage.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("shareholding = %s, want 25.00", resp.ShareholdingPercentage)
	}
}

func TestAdmitContributionErrorMapping(t *testing.T) {
	store, router := newTestServer(t)
	seedCampaign(store, 1, "1000.00", "900.00")

	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown campaign", "/api/v1/campaigns/42/contributions", `{"investorId": 1, "amount": "10"}`, http.StatusNotFound},
		{"over headroom", "/api/v1/campaigns/1/contributions", `{"investorId": 1, "amount": "150.00"}`, http.StatusUnprocessableEntity},
		{"zero amount", "/api/v1/campaigns/1/contributions", `{"investorId": 1, "amount": "0"}`, http.StatusBadRequest},
		{"missing investor", "/api/v1/campaigns/1/contributions", `{"amount": "10"}`, http.StatusBadRequest},
		{"broken json", "/api/v1/campaigns/1/contributions", `{"investorId":`, http.StatusBadRequest},
		{"bad id", "/api/v1/campaigns/zero/contributions", `{"investorId": 1, "amount": "10"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, http.MethodPost, tc.path, tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d (body %s)", tc.name, rec.Code, tc.status, rec.Body)
		}
	}

	// a duplicate pair is a conflict
	if rec := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/1/contributions", `{"investorId": 5, "amount": "50.00"}`); rec.Code != http.StatusCreated {
		t.Fatalf("seed contribution: status = %d", rec.Code)
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/1/contributions", `{"investorId": 5, "amount": "25.00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, want 409", rec.Code)
	}
}

func TestWithdrawContributionEndpoint(t *testing.T) {
	store, router := newTestServer(t)
	seedCampaign(store, 1, "1000.00", "0")

	if rec := doJSON(t, router, http.MethodPost, "/api/v1/campaigns/1/contributions", `{"investorId": 7, "amount": "100.00"}`); rec.Code != http.StatusCreated {
		t.Fatalf("admit: status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/campaigns/1/contributions/7", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("withdraw: status = %d, want 204", rec.Code)
	}
	// withdrawal is idempotent
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/campaigns/1/contributions/7", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("repeat withdraw: status = %d, want 204", rec.Code)
	}
}

func TestCanAcceptEndpoint(t *testing.T) {
	store, router := newTestServer(t)
	campaign := &domain.Campaign{
		ID:                  1,
		Name:                "test campaign",
		PropertyID:          1,
		ProjectID:           1,
		RequiredAmount:      decimal.RequireFromString("1000.00"),
		RaisedAmount:        decimal.RequireFromString("900.00"),
		MinimumContribution: decimal.NewNullDecimal(decimal.RequireFromString("50.00")),
		Status:              domain.StatusActive,
		Active:              true,
	}
	store.PutCampaign(campaign)

	check := func(amount string) (canAccept, meetsMinimum bool) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/campaigns/1/can-accept?amount="+amount, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("can-accept %s: status = %d", amount, rec.Code)
		}
		var resp map[string]bool
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp["canAccept"], resp["meetsMinimum"]
	}

	if can, min := check("100.00"); !can || !min {
		t.Fatalf("100.00: canAccept=%v meetsMinimum=%v, want both true", can, min)
	}
	if can, _ := check("150.00"); can {
		t.Fatal("150.00 accepted over headroom")
	}
	if can, min := check("25.00"); can || min {
		t.Fatalf("25.00: canAccept=%v meetsMinimum=%v, want both false", can, min)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/campaigns/1/can-accept?amount=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad amount: status = %d, want 400", rec.Code)
	}
}
