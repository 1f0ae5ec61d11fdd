package booking

import (
	"time"

	"salonbook/internal/domain"
)

// priceItems resolves the requested items against the active-service
// set and aggregates duration and subtotal. Requested ids that did not
// survive the catalog lookup contribute nothing; if nothing survives
// the whole request is rejected.
func priceItems(reqItems []ItemRequest, services []domain.SalonService) (durationMin int, subtotal int64, items []domain.BookingItem, err error) {
	byID := make(map[int64]domain.SalonService, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	for _, it := range reqItems {
		svc, ok := byID[it.ServiceID]
		if !ok || it.Quantity < 1 {
			continue
		}
		durationMin += svc.DurationMin * it.Quantity
		subtotal += svc.Price * int64(it.Quantity)
		items = append(items, domain.BookingItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			UnitPrice:   svc.Price,
			DurationMin: svc.DurationMin,
			Quantity:    it.Quantity,
		})
	}

	if len(items) == 0 {
		return 0, 0, nil, ErrNoValidItems
	}
	return durationMin, subtotal, items, nil
}

// voucherDiscount validates the voucher against the subtotal and
// computes the discount. A voucher carrying both a fixed amount and a
// percentage is misconfigured and fails closed.
func voucherDiscount(v *domain.Voucher, subtotal int64, now time.Time) (int64, error) {
	if v == nil {
		return 0, ErrVoucherNotFound
	}
	if !v.Active || now.Before(v.StartAt) || now.After(v.EndAt) {
		return 0, ErrVoucherExpired
	}
	if v.MinOrderAmt != nil && subtotal < *v.MinOrderAmt {
		return 0, ErrMinOrderNotMet
	}
	if v.DiscountAmt != nil && v.DiscountPct != nil {
		return 0, ErrVoucherNotFound
	}

	var discount int64
	switch {
	case v.DiscountAmt != nil:
		discount = *v.DiscountAmt
		if discount > subtotal {
			discount = subtotal
		}
	case v.DiscountPct != nil:
		discount = subtotal * int64(*v.DiscountPct) / 100
		if v.MaxDiscount != nil && discount > *v.MaxDiscount {
			discount = *v.MaxDiscount
		}
	}

	if discount < 0 {
		discount = 0
	}
	return discount, nil
}
