/*
summary.go - Claim aggregation for reporting

PURPOSE:
  Two views over the same claim set:

  1. Per-company rows {company, claimed, approved, settled}, alphabetical
     by company name (companies have a natural sort, unlike free-text
     categories which sort by descending sum).
  2. Global claimed/approved/settled totals, computed independently of
     the per-company rows so overlapping groupings can never double-count.

  Outstanding(company) = Σ claimed − Σ settled for that company's claims;
  an unknown company is an empty set and yields zero.
*/
package insurance

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// CompanyTotal is one per-company row of the claim summary.
type CompanyTotal struct {
	Company    string
	Claimed    decimal.Decimal
	Approved   decimal.Decimal
	Settled    decimal.Decimal
	ClaimCount int
}

// Summary is the full reporting view of the claim ledger.
type Summary struct {
	Companies []CompanyTotal

	// Global totals, computed independently of Companies.
	TotalClaimed  decimal.Decimal
	TotalApproved decimal.Decimal
	TotalSettled  decimal.Decimal

	ClaimCount   int
	PendingCount int
	SettledCount int
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Summary aggregates all claims into per-company rows and global totals.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	claims, err := s.store.ListClaims(ctx, Filter{})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(claims), nil
}

// Outstanding returns Σ claimed − Σ settled over one company's claims.
func (s *Service) Outstanding(ctx context.Context, company string) (decimal.Decimal, error) {
	claims, err := s.store.ListClaims(ctx, Filter{Company: company})
	if err != nil {
		return decimal.Zero, err
	}
	out := decimal.Zero
	for _, c := range claims {
		out = out.Add(c.ClaimAmount).Sub(amountOrZero(c.SettledAmount))
	}
	return out, nil
}

// Summarize builds the summary from an in-memory claim set.
func Summarize(claims []Claim) Summary {
	byCompany := make(map[string]*CompanyTotal)
	sum := Summary{
		TotalClaimed:  decimal.Zero,
		TotalApproved: decimal.Zero,
		TotalSettled:  decimal.Zero,
	}

	for _, c := range claims {
		ct, ok := byCompany[c.Company]
		if !ok {
			ct = &CompanyTotal{
				Company:  c.Company,
				Claimed:  decimal.Zero,
				Approved: decimal.Zero,
				Settled:  decimal.Zero,
			}
			byCompany[c.Company] = ct
		}
		ct.Claimed = ct.Claimed.Add(c.ClaimAmount)
		ct.Approved = ct.Approved.Add(amountOrZero(c.ApprovedAmount))
		ct.Settled = ct.Settled.Add(amountOrZero(c.SettledAmount))
		ct.ClaimCount++

		// Global split: a second pass over the same fields, never
		// derived from the per-company rows.
		sum.TotalClaimed = sum.TotalClaimed.Add(c.ClaimAmount)
		sum.TotalApproved = sum.TotalApproved.Add(amountOrZero(c.ApprovedAmount))
		sum.TotalSettled = sum.TotalSettled.Add(amountOrZero(c.SettledAmount))
		sum.ClaimCount++
		switch c.Status {
		case StatusPending:
			sum.PendingCount++
		case StatusSettled:
			sum.SettledCount++
		}
	}

	sum.Companies = make([]CompanyTotal, 0, len(byCompany))
	for _, ct := range byCompany {
		sum.Companies = append(sum.Companies, *ct)
	}
	sort.Slice(sum.Companies, func(i, j int) bool {
		return sum.Companies[i].Company < sum.Companies[j].Company
	})
	return sum
}
