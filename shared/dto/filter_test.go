package dto_test

import (
	"testing"

	"roombook/shared/dto"
)

func TestFilter_GetWhereClause_RangeOperators(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArg    string
		wantValue  any
	}{
		{
			name: "less",
			filter: dto.Filter{
				Field:    "start_minute",
				Operator: dto.FilterOperatorLess,
				Value:    720,
				Table:    "bookings",
				ArgName:  "slot_end",
			},
			wantClause: "bookings.start_minute < :slot_end",
			wantArg:    "slot_end",
			wantValue:  720,
		},
		{
			name: "greater",
			filter: dto.Filter{
				Field:    "end_minute",
				Operator: dto.FilterOperatorGreater,
				Value:    600,
				Table:    "bookings",
				ArgName:  "slot_start",
			},
			wantClause: "bookings.end_minute > :slot_start",
			wantArg:    "slot_start",
			wantValue:  600,
		},
		{
			name: "less_eq",
			filter: dto.Filter{
				Field:    "capacity",
				Operator: dto.FilterOperatorLessEq,
				Value:    10,
			},
			wantClause: "capacity <= :capacity",
			wantArg:    "capacity",
			wantValue:  10,
		},
		{
			name: "greater_eq defaults arg name to the field",
			filter: dto.Filter{
				Field:    "capacity",
				Operator: dto.FilterOperatorGreaterEq,
				Value:    4,
				Table:    "rooms",
			},
			wantClause: "rooms.capacity >= :capacity",
			wantArg:    "capacity",
			wantValue:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if clause != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, clause)
			}

			if got, ok := args[tt.wantArg]; !ok {
				t.Errorf("expected arg %q to be set", tt.wantArg)
			} else if got != tt.wantValue {
				t.Errorf("expected arg %q to be %v, got %v", tt.wantArg, tt.wantValue, got)
			}
		})
	}
}

func TestFilter_GetWhereClause_ArgNameDisambiguatesSameColumn(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "start_minute",
				Operator: dto.FilterOperatorLess,
				Value:    720,
				ArgName:  "slot_end",
			},
			dto.Filter{
				Field:    "end_minute",
				Operator: dto.FilterOperatorGreater,
				Value:    600,
				ArgName:  "slot_start",
			},
		},
	}

	clause, args := group.GetWhereClause()

	want := "(start_minute < :slot_end AND end_minute > :slot_start)"
	if clause != want {
		t.Errorf("expected clause %q, got %q", want, clause)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}

	if args["slot_end"] != 720 || args["slot_start"] != 600 {
		t.Errorf("unexpected args: %v", args)
	}
}
