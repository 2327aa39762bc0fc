package geo

import "testing"

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	q := Pt(3, -4)

	if got := p.Add(q); got != Pt(4, -2) {
		t.Errorf("Add = %v, want (4,-2)", got)
	}
	if got := p.Sub(q); got != Pt(-2, 6) {
		t.Errorf("Sub = %v, want (-2,6)", got)
	}
	if got := q.Scale(0.5); got != Pt(1.5, -2) {
		t.Errorf("Scale = %v, want (1.5,-2)", got)
	}
	if got := q.Abs(); got != Pt(3, 4) {
		t.Errorf("Abs = %v, want (3,4)", got)
	}
}
