package store

import (
	"context"
	"fmt"
	"testing"
)

func TestRecordEvaluation_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ev := Evaluation{
		ID:       "eval-1",
		Seq:      1,
		Op:       "add",
		Operands: []string{"[1, 2]", "[3, 4]"},
		Result:   "[4, 6]",
	}
	if err := s.RecordEvaluation(ctx, ev); err != nil {
		t.Fatalf("RecordEvaluation() failed: %v", err)
	}

	got, err := s.Evaluations(ctx, HistoryFilter{})
	if err != nil {
		t.Fatalf("Evaluations() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Evaluations() returned %d entries, want 1", len(got))
	}
	if got[0].ID != "eval-1" || got[0].Op != "add" || got[0].Result != "[4, 6]" || got[0].ErrorCode != "" {
		t.Errorf("Evaluations()[0] = %+v", got[0])
	}
	if len(got[0].Operands) != 2 || got[0].Operands[1] != "[3, 4]" {
		t.Errorf("operands = %v", got[0].Operands)
	}
}

func TestRecordEvaluation_StoresCanonicalOperands(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.RecordEvaluation(ctx, Evaluation{ID: "e", Seq: 1, Op: "contains", Operands: []string{"[1, 2]", "1.5"}, Result: "true"}); err != nil {
		t.Fatal(err)
	}

	var raw string
	if err := s.db.QueryRow("SELECT operands FROM evaluations WHERE id = 'e'").Scan(&raw); err != nil {
		t.Fatal(err)
	}
	if raw != `["[1, 2]","1.5"]` {
		t.Errorf("stored operands = %s", raw)
	}
}

func TestRecordEvaluation_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ev := Evaluation{ID: "dup", Seq: 1, Op: "recip", Operands: []string{"[2, 4]"}, Result: "[0.25, 0.5]"}
	for i := 0; i < 3; i++ {
		if err := s.RecordEvaluation(ctx, ev); err != nil {
			t.Fatalf("RecordEvaluation() #%d failed: %v", i, err)
		}
	}

	got, err := s.Evaluations(ctx, HistoryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d entries after duplicate writes, want 1", len(got))
	}
}

func TestRecordEvaluation_ErrorEntry(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ev := Evaluation{ID: "bad", Seq: 1, Op: "div", Operands: []string{"[1, 2]", "[-1, 1]"}, ErrorCode: "DIVISION_UNDEFINED"}
	if err := s.RecordEvaluation(ctx, ev); err != nil {
		t.Fatal(err)
	}
	got, err := s.Evaluations(ctx, HistoryFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Result != "" || got[0].ErrorCode != "DIVISION_UNDEFINED" {
		t.Errorf("error entry = %+v", got[0])
	}
}

func TestEvaluations_OrderingAndFilters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Written out of seq order on purpose.
	for _, seq := range []int64{3, 1, 5, 2, 4} {
		op := "add"
		if seq%2 == 0 {
			op = "sin"
		}
		ev := Evaluation{ID: fmt.Sprintf("e%d", seq), Seq: seq, Op: op, Operands: []string{"[0, 1]"}, Terms: int(seq), Result: "[0, 1]"}
		if err := s.RecordEvaluation(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter HistoryFilter
		want   []string
	}{
		{"all", HistoryFilter{}, []string{"e1", "e2", "e3", "e4", "e5"}},
		{"limit keeps most recent", HistoryFilter{Limit: 2}, []string{"e4", "e5"}},
		{"op", HistoryFilter{Op: "sin"}, []string{"e2", "e4"}},
		{"op and limit", HistoryFilter{Op: "add", Limit: 1}, []string{"e5"}},
		{"unknown op", HistoryFilter{Op: "cos"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Evaluations(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			ids := []string{}
			for _, ev := range got {
				ids = append(ids, ev.ID)
			}
			if fmt.Sprint(ids) != fmt.Sprint(tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 0 {
		t.Errorf("LastSeq() on empty log = %d, want 0", seq)
	}

	for _, n := range []int64{4, 9, 2} {
		if err := s.RecordEvaluation(ctx, Evaluation{ID: fmt.Sprint(n), Seq: n, Op: "add"}); err != nil {
			t.Fatal(err)
		}
	}
	seq, err = s.LastSeq(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 9 {
		t.Errorf("LastSeq() = %d, want 9", seq)
	}
}
