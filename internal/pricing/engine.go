// Package pricing turns a stay, the room's inventory calendar and the rate
// plan catalog into priced, bookable candidates. It performs no I/O.
package pricing

import (
	"math"
	"time"

	"hms/pkg/dates"
	"hms/pkg/model"
)

const (
	StandardPlanName          = "Room Only"
	ConditionFreeCancellation = "free-cancellation"
)

type Candidate struct {
	PlanID        string   `json:"rate_plan_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ModifierType  string   `json:"price_modifier_type,omitempty"`
	ModifierValue float64  `json:"price_modifier_val,omitempty"`
	TotalPrice    float64  `json:"total_price"`
	NightlyPrice  float64  `json:"nightly_price"`
	Conditions    []string `json:"conditions"`
}

type Quote struct {
	Available       bool
	Nights          int
	TotalBase       float64
	UnavailableDate string
	Candidates      []Candidate
}

// MinNightly is the cheapest nightly price across all candidates, or zero for
// an unavailable quote.
func (q Quote) MinNightly() float64 {
	if len(q.Candidates) == 0 {
		return 0
	}
	lowest := math.Inf(1)
	for _, c := range q.Candidates {
		lowest = math.Min(lowest, c.NightlyPrice)
	}
	return lowest
}

// ApplyModifier prices a stay under a rate plan modifier. Unknown modifier
// types leave the total untouched.
func ApplyModifier(total float64, nights int, modifierType string, value float64) float64 {
	switch modifierType {
	case model.ModifierPercent:
		return total * (1 + value/100)
	case model.ModifierAbsoluteAdd:
		return total + value*float64(nights)
	case model.ModifierAbsoluteTotal:
		return total + value
	default:
		return total
	}
}

// BaseTotal sums the nightly rates for nights, falling back to the room's base
// price where the calendar has no entry. It stops at the first closed or sold
// out night and returns that date.
func BaseTotal(room *model.RoomType, nights []string, days map[string]*model.InventoryDay) (float64, string, bool) {
	var total float64
	for _, night := range nights {
		day, ok := days[night]
		if !ok || day == nil {
			total += room.BasePrice
			continue
		}
		if !day.Sellable() {
			return 0, night, false
		}
		total += day.Rate
	}
	return total, "", true
}

// QuoteStay prices [checkIn, checkOut) for room. The standard plan always
// comes first, then every active plan that applies to room in catalog order.
func QuoteStay(room *model.RoomType, checkIn, checkOut time.Time, days map[string]*model.InventoryDay, plans []*model.RatePlan) Quote {
	nights := dates.EachNight(checkIn, checkOut)
	quote := Quote{Nights: len(nights)}
	if len(nights) == 0 {
		return quote
	}

	total, blocked, ok := BaseTotal(room, nights, days)
	if !ok {
		quote.UnavailableDate = blocked
		return quote
	}

	quote.Available = true
	quote.TotalBase = total
	quote.Candidates = append(quote.Candidates, Candidate{
		PlanID:       model.StandardRatePlanID,
		Name:         StandardPlanName,
		TotalPrice:   total,
		NightlyPrice: total / float64(quote.Nights),
		Conditions:   []string{ConditionFreeCancellation},
	})

	for _, plan := range plans {
		if plan == nil || !plan.IsActive || !plan.AppliesTo(room.ID) {
			continue
		}
		planTotal := ApplyModifier(total, quote.Nights, plan.ModifierType, plan.ModifierValue)
		conditions := plan.Conditions
		if conditions == nil {
			conditions = []string{}
		}
		quote.Candidates = append(quote.Candidates, Candidate{
			PlanID:        plan.ID,
			Name:          plan.Name,
			Description:   plan.Description,
			ModifierType:  plan.ModifierType,
			ModifierValue: plan.ModifierValue,
			TotalPrice:    planTotal,
			NightlyPrice:  planTotal / float64(quote.Nights),
			Conditions:    conditions,
		})
	}

	return quote
}
