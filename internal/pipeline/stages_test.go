package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/salesreport/internal/model"
)

func testSale(id, customerID int64, item string, quantity any) model.Sale {
	s := model.Sale{
		ID:         id,
		CustomerID: sql.NullInt64{Int64: customerID, Valid: true},
		Item:       item,
	}
	if q, ok := quantity.(string); ok {
		s.Quantity = sql.NullString{String: q, Valid: true}
	}
	return s
}

// sampleFrame mirrors the seeded sample dataset.
func sampleFrame() *Frame {
	return NewFrame(
		[]model.Customer{
			{ID: 1, Age: 21}, {ID: 2, Age: 23}, {ID: 3, Age: 35}, {ID: 4, Age: 40}, {ID: 5, Age: 17},
		},
		[]model.Sale{
			testSale(1, 1, "x", "7"),
			testSale(2, 1, "x", "3"),
			testSale(3, 1, "y", nil),
			testSale(4, 1, "z", "0"),
			testSale(5, 2, "x", "1"),
			testSale(6, 2, "y", "1"),
			testSale(7, 2, "z", "1"),
			testSale(8, 3, "z", "1"),
			testSale(9, 3, "z", "1"),
			testSale(10, 3, "x", nil),
			testSale(11, 4, "x", "5"),
			testSale(12, 5, "y", "3"),
			testSale(13, 2, "y", ""),
			testSale(14, 3, "x", "n/a"),
		},
	)
}

func runReport(t *testing.T, frame *Frame) []model.ReportRow {
	t.Helper()

	p := New(WithLogger(discardLogger()), WithSteps(ReportSteps(model.DefaultAgeRange)...))
	if err := p.Execute(context.Background(), frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return frame.Rows
}

// TestReportSteps tests the full stage sequence.
func TestReportSteps(t *testing.T) {
	t.Parallel()

	t.Run("sample data yields the five expected rows", func(t *testing.T) {
		t.Parallel()

		want := []model.ReportRow{
			{CustomerID: 1, Age: 21, Item: "x", Quantity: 10},
			{CustomerID: 2, Age: 23, Item: "x", Quantity: 1},
			{CustomerID: 2, Age: 23, Item: "y", Quantity: 1},
			{CustomerID: 2, Age: 23, Item: "z", Quantity: 1},
			{CustomerID: 3, Age: 35, Item: "z", Quantity: 2},
		}
		if diff := cmp.Diff(want, runReport(t, sampleFrame())); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("orphan and unknown-customer sales are dropped", func(t *testing.T) {
		t.Parallel()

		orphan := testSale(2, 0, "a", "4")
		orphan.CustomerID = sql.NullInt64{}

		frame := NewFrame(
			[]model.Customer{{ID: 1, Age: 20}},
			[]model.Sale{testSale(1, 1, "a", "1"), orphan, testSale(3, 99, "a", "8")},
		)
		want := []model.ReportRow{{CustomerID: 1, Age: 20, Item: "a", Quantity: 1}}
		if diff := cmp.Diff(want, runReport(t, frame)); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no qualifying rows gives an empty report", func(t *testing.T) {
		t.Parallel()

		frame := NewFrame([]model.Customer{{ID: 1, Age: 60}}, []model.Sale{testSale(1, 1, "a", "1")})
		if rows := runReport(t, frame); len(rows) != 0 {
			t.Errorf("expected no rows, got %v", rows)
		}
	})

	t.Run("duplicate customers are a transform error", func(t *testing.T) {
		t.Parallel()

		frame := NewFrame([]model.Customer{{ID: 1, Age: 20}, {ID: 1, Age: 30}}, nil)
		p := New(WithLogger(discardLogger()), WithSteps(ReportSteps(model.DefaultAgeRange)...))

		err := p.Execute(context.Background(), frame)
		if !errors.Is(err, ErrDuplicateCustomer) {
			t.Errorf("expected ErrDuplicateCustomer, got %v", err)
		}
	})
}

// TestStages tests individual stages.
func TestStages(t *testing.T) {
	t.Parallel()

	t.Run("filter customers keeps inclusive bounds", func(t *testing.T) {
		t.Parallel()

		frame := NewFrame([]model.Customer{{ID: 1, Age: 17}, {ID: 2, Age: 18}, {ID: 3, Age: 35}, {ID: 4, Age: 36}}, nil)
		if err := NewFilterCustomersStep(model.DefaultAgeRange).Do(context.Background(), frame); err != nil {
			t.Fatal(err)
		}
		want := []model.Customer{{ID: 2, Age: 18}, {ID: 3, Age: 35}}
		if diff := cmp.Diff(want, frame.Customers); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("coerce marks unparsable quantities invalid", func(t *testing.T) {
		t.Parallel()

		frame := &Frame{Records: []Record{
			{Item: "a", RawQuantity: sql.NullString{String: "4", Valid: true}},
			{Item: "b", RawQuantity: sql.NullString{String: "four", Valid: true}},
		}}
		if err := (CoerceQuantityStep{}).Do(context.Background(), frame); err != nil {
			t.Fatal(err)
		}
		if !frame.Records[0].Valid || frame.Records[0].Quantity != 4 {
			t.Errorf("unexpected first record: %+v", frame.Records[0])
		}
		if frame.Records[1].Valid {
			t.Errorf("expected second record to be invalid: %+v", frame.Records[1])
		}
	})

	t.Run("keep positive drops zero, negative and invalid", func(t *testing.T) {
		t.Parallel()

		frame := &Frame{Records: []Record{
			{Item: "zero", Quantity: 0, Valid: true},
			{Item: "neg", Quantity: -1, Valid: true},
			{Item: "nan", Quantity: 9, Valid: false},
			{Item: "ok", Quantity: 2, Valid: true},
		}}
		if err := (KeepPositiveStep{}).Do(context.Background(), frame); err != nil {
			t.Fatal(err)
		}
		if len(frame.Records) != 1 || frame.Records[0].Item != "ok" {
			t.Errorf("unexpected records: %+v", frame.Records)
		}
	})
}

// TestGroupSum tests the generic grouping helper.
func TestGroupSum(t *testing.T) {
	t.Parallel()

	t.Run("groups in first-seen order", func(t *testing.T) {
		t.Parallel()

		in := []string{"b", "a", "b", "c", "a", "b"}
		got, err := GroupSum(in, func(s string) string { return s }, func(string) int { return 1 })
		if err != nil {
			t.Fatal(err)
		}
		want := []Group[string]{{Key: "b", Sum: 3}, {Key: "a", Sum: 2}, {Key: "c", Sum: 1}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overflow is an error", func(t *testing.T) {
		t.Parallel()

		in := []int{math.MaxInt, 1}
		_, err := GroupSum(in, func(int) string { return "k" }, func(n int) int { return n })
		if err == nil {
			t.Error("expected overflow error")
		}
	})
}
