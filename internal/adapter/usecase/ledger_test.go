package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ciroschultz/Renovacampo/internal/adapter/memory"
	"github.com/ciroschultz/Renovacampo/internal/core/domain"
	"github.com/ciroschultz/Renovacampo/internal/core/port"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeCampaign(id int64, required, raised string) *domain.Campaign {
	return &domain.Campaign{
		ID:             id,
		Name:           "test campaign",
		PropertyID:     1,
		ProjectID:      1,
		RequiredAmount: dec(required),
		RaisedAmount:   dec(raised),
		Status:         domain.StatusActive,
		Active:         true,
	}
}

func newLedger(store *memory.LedgerStore) *LedgerUseCase {
	svc := NewLedgerUseCase(store)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestAdmitContribution(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "10000.00", "0"))
	svc := newLedger(store)

	c, err := svc.AdmitContribution(ctx, 1, 7, dec("2500.00"))
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !c.ShareholdingPercentage.Equal(dec("25.00")) {
		t.Fatalf("shareholding = %s, want 25.00", c.ShareholdingPercentage)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if !after.RaisedAmount.Equal(dec("2500.00")) {
		t.Fatalf("raised = %s, want 2500.00", after.RaisedAmount)
	}
	if after.Status != domain.StatusActive {
		t.Fatalf("status = %s, want ACTIVE", after.Status)
	}
}

func TestAdmitCompletesCampaignAtTarget(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "10000.00", "0"))
	svc := newLedger(store)

	if _, err := svc.AdmitContribution(ctx, 1, 1, dec("4000.00")); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 2, dec("6000.00")); err != nil {
		t.Fatalf("second admit: %v", err)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if after.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", after.Status)
	}
	if !after.FundingProgress().Equal(dec("100.00")) {
		t.Fatalf("progress = %s, want 100.00", after.FundingProgress())
	}

	// a completed campaign takes no further capital
	if _, err := svc.AdmitContribution(ctx, 1, 3, dec("1.00")); !errors.Is(err, port.ErrCampaignNotAccepting) {
		t.Fatalf("admit into completed campaign: %v, want ErrCampaignNotAccepting", err)
	}
}

func TestAdmitRejectsOverFunding(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "1000.00", "900.00"))
	svc := newLedger(store)

	_, err := svc.AdmitContribution(ctx, 1, 7, dec("150.00"))
	if !errors.Is(err, port.ErrCampaignNotAccepting) {
		t.Fatalf("admit: %v, want ErrCampaignNotAccepting", err)
	}

	// a rejected admission leaves no trace
	after, _ := store.GetActiveCampaign(ctx, 1)
	if !after.RaisedAmount.Equal(dec("900.00")) {
		t.Fatalf("raised = %s, want unchanged 900.00", after.RaisedAmount)
	}
	contribs, _ := store.CampaignContributions(ctx, 1)
	if len(contribs) != 0 {
		t.Fatalf("contributions = %d, want none", len(contribs))
	}

	// the exact remainder still fits
	if _, err = svc.AdmitContribution(ctx, 1, 7, dec("100.00")); err != nil {
		t.Fatalf("exact-remainder admit: %v", err)
	}
}

func TestAdmitPreconditionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	campaign := activeCampaign(1, "10000.00", "0")
	campaign.MinimumContribution = decimal.NewNullDecimal(dec("500.00"))
	store.PutCampaign(campaign)
	svc := newLedger(store)

	if _, err := svc.AdmitContribution(ctx, 99, 7, dec("100")); !errors.Is(err, port.ErrCampaignNotFound) {
		t.Fatalf("unknown campaign: %v, want ErrCampaignNotFound", err)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("0")); !errors.Is(err, port.ErrInvalidAmount) {
		t.Fatalf("zero amount: %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("-50")); !errors.Is(err, port.ErrInvalidAmount) {
		t.Fatalf("negative amount: %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("499.99")); !errors.Is(err, port.ErrBelowMinimum) {
		t.Fatalf("below minimum: %v, want ErrBelowMinimum", err)
	}

	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("500.00")); err != nil {
		t.Fatalf("exact minimum: %v", err)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("600.00")); !errors.Is(err, port.ErrDuplicateContribution) {
		t.Fatalf("second contribution: %v, want ErrDuplicateContribution", err)
	}
}

func TestAdmitRespectsDeadline(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()

	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	campaign := activeCampaign(1, "10000.00", "0")
	campaign.FundingDeadline = &deadline
	store.PutCampaign(campaign)

	// contributions on the deadline day itself are admitted
	svc := newLedger(store)
	if _, err := svc.AdmitContribution(ctx, 1, 1, dec("100")); err != nil {
		t.Fatalf("deadline-day admit: %v", err)
	}

	svc.now = func() time.Time {
		return time.Date(2026, 3, 16, 0, 0, 1, 0, time.UTC)
	}
	if _, err := svc.AdmitContribution(ctx, 1, 2, dec("100")); !errors.Is(err, port.ErrCampaignNotAccepting) {
		t.Fatalf("past-deadline admit: %v, want ErrCampaignNotAccepting", err)
	}
}

func TestWithdrawContribution(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "10000.00", "0"))
	svc := newLedger(store)

	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("2500.00")); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := svc.WithdrawContribution(ctx, 1, 7); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if !after.RaisedAmount.Equal(decimal.Zero) {
		t.Fatalf("raised = %s, want 0", after.RaisedAmount)
	}
	contribs, _ := store.InvestorContributions(ctx, 7)
	if len(contribs) != 0 {
		t.Fatalf("contributions = %d, want none", len(contribs))
	}

	// withdrawing again is a no-op, not an error
	if err := svc.WithdrawContribution(ctx, 1, 7); err != nil {
		t.Fatalf("repeat withdraw: %v", err)
	}

	// and the pair may contribute again afterwards
	if _, err := svc.AdmitContribution(ctx, 1, 7, dec("1000.00")); err != nil {
		t.Fatalf("re-admit after withdrawal: %v", err)
	}
}

func TestWithdrawKeepsCompletedStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "1000.00", "0"))
	svc := newLedger(store)

	if _, err := svc.AdmitContribution(ctx, 1, 1, dec("1000.00")); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if err := svc.WithdrawContribution(ctx, 1, 1); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if after.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED to survive withdrawal", after.Status)
	}
	if !after.RaisedAmount.Equal(decimal.Zero) {
		t.Fatalf("raised = %s, want 0", after.RaisedAmount)
	}
}

// TestConcurrentAdmission ensures two admissions racing for the last slice
// of headroom never jointly overshoot the target.
func TestConcurrentAdmission(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "1000.00", "900.00"))
	svc := newLedger(store)

	amounts := []string{"60.00", "80.00"}
	errs := make([]error, len(amounts))
	var wg sync.WaitGroup
	for i, a := range amounts {
		wg.Add(1)
		go func(i int, amount decimal.Decimal) {
			defer wg.Done()
			_, errs[i] = svc.AdmitContribution(ctx, 1, int64(i+1), amount)
		}(i, dec(a))
	}
	wg.Wait()

	var admitted int
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, port.ErrCampaignNotAccepting):
		default:
			t.Fatalf("unexpected admission error: %v", err)
		}
	}
	if admitted != 1 {
		t.Fatalf("admitted = %d, want exactly 1", admitted)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if after.RaisedAmount.GreaterThan(after.RequiredAmount) {
		t.Fatalf("raised %s exceeds required %s", after.RaisedAmount, after.RequiredAmount)
	}
	total, _ := store.CampaignContributionTotal(ctx, 1)
	if !after.RaisedAmount.Equal(dec("900.00").Add(total)) {
		t.Fatalf("raised %s does not match 900.00 + admitted %s", after.RaisedAmount, total)
	}
}

// TestConcurrentAdmissionMany floods an empty campaign with more capital
// than it needs and checks the admitted sum lands exactly on the target.
func TestConcurrentAdmissionMany(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "1000.00", "0"))
	svc := newLedger(store)

	const investors = 20
	errs := make([]error, investors)
	var wg sync.WaitGroup
	for i := 0; i < investors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AdmitContribution(ctx, 1, int64(i+1), dec("100.00"))
		}(i)
	}
	wg.Wait()

	var admitted int
	for _, err := range errs {
		if err == nil {
			admitted++
		} else if !errors.Is(err, port.ErrCampaignNotAccepting) {
			t.Fatalf("unexpected admission error: %v", err)
		}
	}
	if admitted != 10 {
		t.Fatalf("admitted = %d, want exactly 10", admitted)
	}

	after, _ := store.GetActiveCampaign(ctx, 1)
	if !after.RaisedAmount.Equal(dec("1000.00")) {
		t.Fatalf("raised = %s, want exactly 1000.00", after.RaisedAmount)
	}
	if after.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want COMPLETED", after.Status)
	}
}

func TestCanAcceptContribution(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	store.PutCampaign(activeCampaign(1, "1000.00", "900.00"))
	svc := newLedger(store)

	ok, err := svc.CanAcceptContribution(ctx, 1, dec("100.00"))
	if err != nil || !ok {
		t.Fatalf("can accept 100: ok=%v err=%v", ok, err)
	}
	ok, err = svc.CanAcceptContribution(ctx, 1, dec("100.01"))
	if err != nil || ok {
		t.Fatalf("can accept 100.01: ok=%v err=%v, want false", ok, err)
	}
	// unknown campaigns report false rather than erroring
	ok, err = svc.CanAcceptContribution(ctx, 42, dec("1"))
	if err != nil || ok {
		t.Fatalf("unknown campaign: ok=%v err=%v, want false", ok, err)
	}
}

func TestMeetsMinimum(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()

	noMin := activeCampaign(1, "1000.00", "0")
	store.PutCampaign(noMin)
	withMin := activeCampaign(2, "1000.00", "0")
	withMin.MinimumContribution = decimal.NewNullDecimal(dec("250.00"))
	store.PutCampaign(withMin)

	svc := newLedger(store)

	ok, err := svc.MeetsMinimum(ctx, 1, dec("0.01"))
	if err != nil || !ok {
		t.Fatalf("no-minimum campaign: ok=%v err=%v", ok, err)
	}
	ok, err = svc.MeetsMinimum(ctx, 2, dec("249.99"))
	if err != nil || ok {
		t.Fatalf("below minimum: ok=%v err=%v, want false", ok, err)
	}
	ok, err = svc.MeetsMinimum(ctx, 2, dec("250.00"))
	if err != nil || !ok {
		t.Fatalf("exact minimum: ok=%v err=%v", ok, err)
	}
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()

	a := activeCampaign(1, "1000.00", "250.00")
	a.ExpectedReturn = decimal.NewNullDecimal(dec("10.00"))
	store.PutCampaign(a)
	b := activeCampaign(2, "2000.00", "0")
	b.ExpectedReturn = decimal.NewNullDecimal(dec("15.00"))
	store.PutCampaign(b)
	// deactivated campaigns stay out of the aggregates
	c := activeCampaign(3, "9999.00", "9999.00")
	c.Active = false
	store.PutCampaign(c)

	svc := newLedger(store)
	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if !overview.TotalRequired.Equal(dec("3000.00")) {
		t.Fatalf("total required = %s, want 3000.00", overview.TotalRequired)
	}
	if !overview.TotalRaised.Equal(dec("250.00")) {
		t.Fatalf("total raised = %s, want 250.00", overview.TotalRaised)
	}
	if overview.ActiveCampaigns != 2 {
		t.Fatalf("active campaigns = %d, want 2", overview.ActiveCampaigns)
	}
	if !overview.AverageReturn.Equal(dec("12.50")) {
		t.Fatalf("average return = %s, want 12.50", overview.AverageReturn)
	}
}
