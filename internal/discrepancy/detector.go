// Package discrepancy compares what was expected on a delivery with what
// actually arrived and proposes an incident when they disagree.
package discrepancy

import (
	"fmt"
	"strings"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// Proposal is the incident a discrepancy calls for.
type Proposal struct {
	Type        domain.IncidentType
	Priority    domain.Priority
	Description string
}

var defaultPriority = map[domain.IncidentType]domain.Priority{
	domain.IncidentTypeWrongItem: domain.PriorityHigh,
	domain.IncidentTypeDamaged:   domain.PriorityHigh,
	domain.IncidentTypeShortage:  domain.PriorityMedium,
	domain.IncidentTypeOverage:   domain.PriorityLow,
}

// Detect returns nil when the quantities match and the condition is good.
// A condition problem decides the type even when the quantities also differ;
// the description then records both facts. Quantities are assumed non-negative.
func Detect(expected, received int, condition domain.ItemCondition) *Proposal {
	var facts []string
	var typ domain.IncidentType

	switch condition {
	case domain.ConditionDamaged:
		typ = domain.IncidentTypeDamaged
		facts = append(facts, "items received damaged")
	case domain.ConditionWrongItem:
		typ = domain.IncidentTypeWrongItem
		facts = append(facts, "wrong item received")
	}

	if diff := received - expected; diff != 0 {
		if diff < 0 {
			facts = append(facts, fmt.Sprintf("shortage of %d (expected %d, received %d)", -diff, expected, received))
			if typ == "" {
				typ = domain.IncidentTypeShortage
			}
		} else {
			facts = append(facts, fmt.Sprintf("overage of %d (expected %d, received %d)", diff, expected, received))
			if typ == "" {
				typ = domain.IncidentTypeOverage
			}
		}
	}

	if typ == "" {
		return nil
	}
	return &Proposal{
		Type:        typ,
		Priority:    defaultPriority[typ],
		Description: strings.Join(facts, "; "),
	}
}
