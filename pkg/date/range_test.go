package date

import (
	"errors"
	"math"
	"testing"

	"github.com/daviddao/rpndate/pkg/stamp"
)

func testBounds(t *testing.T) (start, end *Date) {
	t.Helper()
	start = mustPrint(t, 20030423, 11453500)
	return start, start.Plus(48)
}

func mustRange(t *testing.T, start, end *Date, delta float64) *Range {
	t.Helper()
	r, err := NewRange(start, end, delta)
	if err != nil {
		t.Fatalf("NewRange(%v, %v, %v): %v", start, end, delta, err)
	}
	return r
}

func prints(ds []*Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = stamp.FormatPrint(d.Print())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRangeRejectsBadArguments(t *testing.T) {
	start, end := testBounds(t)
	for _, delta := range []float64{0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewRange(start, end, delta); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("NewRange(delta=%v): got %v, want ErrInvalidStep", delta, err)
		}
	}
	if _, err := NewRange(nil, end, 1); !errors.Is(err, ErrInvalidArgumentType) {
		t.Errorf("NewRange(nil start): got %v, want ErrInvalidArgumentType", err)
	}
	if _, err := NewRange(start, nil, 1); !errors.Is(err, ErrInvalidArgumentType) {
		t.Errorf("NewRange(nil end): got %v, want ErrInvalidArgumentType", err)
	}
}

func TestRangeLengthAndRemaining(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 6)
	if l := r.Length(); l != 48 {
		t.Fatalf("Length: got %v, want 48", l)
	}
	if rem := r.Remaining(); rem != 48 {
		t.Fatalf("Remaining before Next: got %v, want 48", rem)
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rem := r.Remaining(); rem != 42 {
		t.Fatalf("Remaining after one step: got %v, want 42", rem)
	}
	if l := mustRange(t, end, start, -6).Length(); l != 48 {
		t.Fatalf("reverse Length: got %v, want 48", l)
	}
}

func TestRangeNextStartsAfterStart(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 6)
	d, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := "20030423/17453500 ; origin 20030423/11453500 deet=3600.0 npas=6.0"
	if got := d.String(); got != want {
		t.Fatalf("Next: got %q, want %q", got, want)
	}
}

func TestRangeDoesNotAliasBounds(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 6)
	startBefore, endBefore := start.String(), end.String()

	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if start.String() != startBefore || end.String() != endBefore {
		t.Fatal("Next modified the caller's bounds")
	}

	start.AddHours(100)
	end.AddHours(100)
	if got := stamp.FormatPrint(r.Start().Print()); got != "20030423/11453500" {
		t.Fatalf("range start followed the caller's Date: %s", got)
	}
	if got := stamp.FormatPrint(r.End().Print()); got != "20030425/11453500" {
		t.Fatalf("range end followed the caller's Date: %s", got)
	}
}

func TestRangeExhaustion(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 36)

	d, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	want := "20030424/23453500 ; origin 20030423/11453500 deet=3600.0 npas=36.0"
	if got := d.String(); got != want {
		t.Fatalf("first Next: got %q, want %q", got, want)
	}

	if _, err := r.Next(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("second Next: got %v, want ErrExhausted", err)
	}
	cursor := r.Cursor()
	if _, err := r.Next(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("third Next: got %v, want ErrExhausted", err)
	}
	if !r.Cursor().Equal(cursor) {
		t.Fatal("Next moved the cursor after exhaustion")
	}
	if got := stamp.FormatPrint(r.End().Print()); got != "20030425/11453500" {
		t.Fatalf("exhaustion changed end: %s", got)
	}
}

func TestRangeIterTwelveHours(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 12)
	want := []string{
		"20030423/11453500",
		"20030423/23453500",
		"20030424/11453500",
		"20030424/23453500",
		"20030425/11453500",
	}
	first := r.Dates()
	if got := prints(first); !equalStrings(got, want) {
		t.Fatalf("first traversal: got %v, want %v", got, want)
	}
	second := r.Dates()
	if got := prints(second); !equalStrings(got, want) {
		t.Fatalf("second traversal: got %v, want %v (traversals must not share state)", got, want)
	}
	if first[0].StepLength() != 3600 || first[0].StepCount() != 0 {
		t.Fatalf("first element: deet=%v npas=%v, want 3600/0", first[0].StepLength(), first[0].StepCount())
	}
	for i := 1; i < len(first); i++ {
		if diff := first[i].Sub(first[i-1]); diff != 12 {
			t.Fatalf("elements %d and %d differ by %v, want 12", i-1, i, diff)
		}
	}
}

func TestRangeIterLeavesCursorAlone(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 12)
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	before := r.Cursor()
	_ = r.Dates()
	if !r.Cursor().Equal(before) {
		t.Fatal("Iter moved the original range's cursor")
	}
}

func TestRangeIterThirtySixHours(t *testing.T) {
	start, end := testBounds(t)
	it := mustRange(t, start, end, 36).Iter()
	want := []string{"20030423/11453500", "20030424/23453500"}
	for i, w := range want {
		d, err := it.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if got := stamp.FormatPrint(d.Print()); got != w {
			t.Fatalf("Next %d: got %s, want %s", i, got, w)
		}
	}
	if _, err := it.Next(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("Next past end: got %v, want ErrExhausted", err)
	}
}

func TestRangeReverse(t *testing.T) {
	start, end := testBounds(t)
	got := prints(mustRange(t, end, start, -12).Dates())
	want := []string{
		"20030425/11453500",
		"20030424/23453500",
		"20030424/11453500",
		"20030423/23453500",
		"20030423/11453500",
	}
	if !equalStrings(got, want) {
		t.Fatalf("reverse traversal: got %v, want %v", got, want)
	}
}

func TestRangeMismatchedSignIsEmpty(t *testing.T) {
	start, end := testBounds(t)
	if got := mustRange(t, start, end, -12).Dates(); len(got) != 0 {
		t.Fatalf("step pointing away from end: got %v, want none", prints(got))
	}
}

func TestRangeSinglePoint(t *testing.T) {
	start, _ := testBounds(t)
	got := prints(mustRange(t, start, start, 6).Dates())
	if !equalStrings(got, []string{"20030423/11453500"}) {
		t.Fatalf("start == end: got %v", got)
	}
}

func TestRangeLastPointNotExceedingEnd(t *testing.T) {
	start, end := testBounds(t)
	ds := mustRange(t, start, end, 10).Dates()
	if len(ds) != 5 {
		t.Fatalf("got %d dates, want 5 (0,10,20,30,40)", len(ds))
	}
	if diff := end.Sub(ds[len(ds)-1]); diff != 8 {
		t.Fatalf("last date is %v hours before end, want 8", diff)
	}
}

func TestRangeReset(t *testing.T) {
	start, end := testBounds(t)
	r := mustRange(t, start, end, 36)
	r.Next()
	r.Next()
	r.Reset()
	if !r.Cursor().Equal(start) {
		t.Fatalf("Reset: cursor %v, want %v", r.Cursor(), start)
	}
	d, err := r.Next()
	if err != nil {
		t.Fatalf("Next after Reset: %v", err)
	}
	if got := stamp.FormatPrint(d.Print()); got != "20030424/23453500" {
		t.Fatalf("Next after Reset: got %s, want 20030424/23453500", got)
	}
}

func TestRangeAllStopsEarly(t *testing.T) {
	start, end := testBounds(t)
	n := 0
	for range mustRange(t, start, end, 1).All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("break after 3: got %d", n)
	}
}

func TestRangeString(t *testing.T) {
	start, end := testBounds(t)
	want := "from:(20030423,11453500), to:(20030425,11453500), delta:6 at (20030423,11453500)"
	if got := mustRange(t, start, end, 6).String(); got != want {
		t.Fatalf("String: got %q, want %q", got, want)
	}
}
