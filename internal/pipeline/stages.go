package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/salesreport/internal/model"
)

// ErrDuplicateCustomer is returned by JoinSales when two customers share an ID.
var ErrDuplicateCustomer = errors.New("duplicate customer id")

// ReportSteps returns the steps that turn raw customers and sales into the
// sorted report, in the order they must run.
func ReportSteps(ages model.AgeRange) []Step {
	return []Step{
		NewFilterCustomersStep(ages),
		JoinSalesStep{},
		DropMissingQuantityStep{},
		CoerceQuantityStep{},
		KeepPositiveStep{},
		GroupSumStep{},
		ToReportRowsStep{},
		SortRowsStep{},
	}
}

// FilterCustomersStep keeps only customers within an age range.
type FilterCustomersStep struct {
	ages model.AgeRange
}

// NewFilterCustomersStep creates a FilterCustomersStep.
func NewFilterCustomersStep(ages model.AgeRange) FilterCustomersStep {
	return FilterCustomersStep{ages: ages}
}

// Name returns the step name.
func (s FilterCustomersStep) Name() string {
	return "filter_customers"
}

// Do executes the step.
func (s FilterCustomersStep) Do(_ context.Context, frame *Frame) error {
	frame.Customers = Filter(frame.Customers, func(c model.Customer) bool {
		return s.ages.Contains(c.Age)
	})
	return nil
}

// JoinSalesStep inner-joins sales to customers on customer ID.
// Sales without a matching customer, including orphans, are dropped.
type JoinSalesStep struct{}

// Name returns the step name.
func (JoinSalesStep) Name() string {
	return "join_sales"
}

// Do executes the step.
func (JoinSalesStep) Do(_ context.Context, frame *Frame) error {
	ages := make(map[int64]int, len(frame.Customers))
	for _, c := range frame.Customers {
		if _, dup := ages[c.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateCustomer, c.ID)
		}
		ages[c.ID] = c.Age
	}

	records := make([]Record, 0, len(frame.Sales))
	for _, sale := range frame.Sales {
		if !sale.CustomerID.Valid {
			continue
		}
		age, ok := ages[sale.CustomerID.Int64]
		if !ok {
			continue
		}
		records = append(records, Record{
			CustomerID:  sale.CustomerID.Int64,
			Age:         age,
			Item:        sale.Item,
			RawQuantity: sale.Quantity,
		})
	}

	frame.Records = records
	return nil
}

// DropMissingQuantityStep drops records whose quantity is NULL or blank.
type DropMissingQuantityStep struct{}

// Name returns the step name.
func (DropMissingQuantityStep) Name() string {
	return "drop_missing_quantity"
}

// Do executes the step.
func (DropMissingQuantityStep) Do(_ context.Context, frame *Frame) error {
	frame.Records = Filter(frame.Records, func(r Record) bool {
		return model.QuantityPresent(r.RawQuantity)
	})
	return nil
}

// CoerceQuantityStep parses the quantity text of every record.
// Unparsable quantities are marked invalid instead of failing the run.
type CoerceQuantityStep struct{}

// Name returns the step name.
func (CoerceQuantityStep) Name() string {
	return "coerce_quantity"
}

// Do executes the step.
func (CoerceQuantityStep) Do(_ context.Context, frame *Frame) error {
	frame.Records = Map(frame.Records, func(r Record) Record {
		r.Quantity, r.Valid = model.CoerceQuantity(r.RawQuantity.String)
		return r
	})
	return nil
}

// KeepPositiveStep keeps valid records with a strictly positive quantity.
type KeepPositiveStep struct{}

// Name returns the step name.
func (KeepPositiveStep) Name() string {
	return "keep_positive"
}

// Do executes the step.
func (KeepPositiveStep) Do(_ context.Context, frame *Frame) error {
	frame.Records = Filter(frame.Records, func(r Record) bool {
		return r.Valid && model.PositiveQuantity(r.Quantity)
	})
	return nil
}

// GroupKey is the report grouping key.
type GroupKey struct {
	CustomerID int64
	Age        int
	Item       string
}

// GroupSumStep sums quantities per (customer, age, item).
type GroupSumStep struct{}

// Name returns the step name.
func (GroupSumStep) Name() string {
	return "group_sum"
}

// Do executes the step.
func (GroupSumStep) Do(_ context.Context, frame *Frame) error {
	groups, err := GroupSum(frame.Records,
		func(r Record) GroupKey {
			return GroupKey{CustomerID: r.CustomerID, Age: r.Age, Item: r.Item}
		},
		func(r Record) int { return r.Quantity },
	)
	if err != nil {
		return err
	}

	frame.Groups = groups
	return nil
}

// ToReportRowsStep converts groups to report rows.
type ToReportRowsStep struct{}

// Name returns the step name.
func (ToReportRowsStep) Name() string {
	return "to_report_rows"
}

// Do executes the step.
func (ToReportRowsStep) Do(_ context.Context, frame *Frame) error {
	frame.Rows = Map(frame.Groups, func(g Group[GroupKey]) model.ReportRow {
		return model.ReportRow{
			CustomerID: g.Key.CustomerID,
			Age:        g.Key.Age,
			Item:       g.Key.Item,
			Quantity:   g.Sum,
		}
	})
	return nil
}

// SortRowsStep sorts report rows by customer ID, then item.
type SortRowsStep struct{}

// Name returns the step name.
func (SortRowsStep) Name() string {
	return "sort_rows"
}

// Do executes the step.
func (SortRowsStep) Do(_ context.Context, frame *Frame) error {
	model.SortRows(frame.Rows)
	return nil
}
