package ledger

// Field is a tagged optional update for one exit-condition value. It
// distinguishes "not provided" from "explicitly cleared" so a legitimate zero
// is never mistaken for absence.
type Field struct {
	present bool
	clear   bool
	value   float64
}

// SetField returns a Field that overwrites the stored value.
func SetField(v float64) Field {
	return Field{present: true, value: v}
}

// ClearField returns a Field that removes the stored value.
func ClearField() Field {
	return Field{present: true, clear: true}
}

// Present reports whether the field was provided at all.
func (f Field) Present() bool { return f.present }

// apply resolves the field against the currently stored pointer.
func (f Field) apply(cur *float64) *float64 {
	if !f.present {
		return cur
	}
	if f.clear {
		return nil
	}
	v := f.value
	return &v
}

// Adjustment carries the exit-condition changes for AdjustExitConditions.
// At least one field must be present.
type Adjustment struct {
	StopLoss     Field
	ProfitTarget Field
	TrailingStop Field
}

func (a Adjustment) empty() bool {
	return !a.StopLoss.Present() && !a.ProfitTarget.Present() && !a.TrailingStop.Present()
}
