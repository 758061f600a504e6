package trafficfsm

// InputGuard selects the input codes a transition applies to
type InputGuard func(in InputVector) bool

// Demand returns a guard accepting every input with all bits of sensor set
func Demand(sensor InputVector) InputGuard {
	return func(in InputVector) bool {
		return in.Has(sensor)
	}
}

// TableBuilder provides the main entry point for building state tables
type TableBuilder interface {
	State(id StateID) RowBuilder
	Build() (Table, error)
}

// RowBuilder configures one table row
type RowBuilder interface {
	Outputs(main LampPattern, ped PedPattern) RowBuilder
	Hold(ticks uint32) RowBuilder

	To(target StateID) TransitionBuilder
	ToSelf() TransitionBuilder
	Always(target StateID) RowBuilder

	State(id StateID) RowBuilder
	Build() (Table, error)
}

// TransitionBuilder configures which input codes select a successor.
// Transitions of a row are matched in declaration order: an input code goes
// to the first transition that accepts it.
type TransitionBuilder interface {
	// Input selection
	On(inputs ...InputVector) TransitionBuilder
	Otherwise() TransitionBuilder

	// Conditions
	When(guard InputGuard) TransitionBuilder
	Unless(guard InputGuard) TransitionBuilder

	// Multiple transitions from the same row
	To(target StateID) TransitionBuilder
	ToSelf() TransitionBuilder

	// Navigation back
	State(id StateID) RowBuilder
	Build() (Table, error)
}

// tableBuilderImpl implements TableBuilder
type tableBuilderImpl struct {
	rows    [NumStates]*rowDef
	invalid []StateID
}

type rowDef struct {
	id          StateID
	main        LampPattern
	ped         PedPattern
	hold        uint32
	transitions []*transitionDef
}

type transitionDef struct {
	target    StateID
	inputs    []InputVector
	guards    []InputGuard
	otherwise bool
}

// NewTableBuilder creates a new table builder. Rows default to
// DefaultHoldTicks.
func NewTableBuilder() TableBuilder {
	return &tableBuilderImpl{}
}

// State creates or reopens the row of id
func (tb *tableBuilderImpl) State(id StateID) RowBuilder {
	if !id.IsValid() {
		tb.invalid = append(tb.invalid, id)
		return &rowBuilderImpl{table: tb, row: &rowDef{id: id}}
	}

	if tb.rows[id] == nil {
		tb.rows[id] = &rowDef{id: id, hold: DefaultHoldTicks}
	}
	return &rowBuilderImpl{table: tb, row: tb.rows[id]}
}

// Build resolves every row into NumInputs successors and validates the
// resulting table
func (tb *tableBuilderImpl) Build() (Table, error) {
	var t Table
	collector := NewErrorCollector()

	for _, id := range tb.invalid {
		collector.Add(NewStateNotFoundError(id.String()))
	}

	for _, id := range AllStates() {
		row := tb.rows[id]
		if row == nil {
			collector.Add(NewTableError(ErrCodeIncompleteTable, id, "state missing from table"))
			continue
		}

		state := State{MainOutput: row.main, PedOutput: row.ped, HoldTicks: row.hold}
		complete := true
		for in := InputVector(0); in < NumInputs; in++ {
			tr := row.match(in)
			if tr == nil {
				collector.Add(&TableError{
					Code:    ErrCodeIncompleteTable,
					State:   id,
					Input:   in,
					HasCode: true,
					Message: "no transition accepts this input",
				})
				complete = false
				continue
			}
			state.Next[in] = tr.target
		}
		if complete {
			t[id] = state
		}
	}

	if err := collector.Err(); err != nil {
		return Table{}, err
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (r *rowDef) match(in InputVector) *transitionDef {
	for _, tr := range r.transitions {
		if tr.accepts(in) {
			return tr
		}
	}
	return nil
}

func (tr *transitionDef) accepts(in InputVector) bool {
	if !tr.otherwise && len(tr.inputs) == 0 && len(tr.guards) == 0 {
		return false
	}
	if len(tr.inputs) > 0 {
		listed := false
		for _, code := range tr.inputs {
			if code.Mask() == in {
				listed = true
				break
			}
		}
		if !listed {
			return false
		}
	}
	for _, guard := range tr.guards {
		if !guard(in) {
			return false
		}
	}
	return true
}

// rowBuilderImpl implements RowBuilder
type rowBuilderImpl struct {
	table *tableBuilderImpl
	row   *rowDef
}

func (rb *rowBuilderImpl) Outputs(main LampPattern, ped PedPattern) RowBuilder {
	rb.row.main = main
	rb.row.ped = ped
	return rb
}

func (rb *rowBuilderImpl) Hold(ticks uint32) RowBuilder {
	rb.row.hold = ticks
	return rb
}

func (rb *rowBuilderImpl) To(target StateID) TransitionBuilder {
	tr := &transitionDef{target: target}
	rb.row.transitions = append(rb.row.transitions, tr)
	return &transitionBuilderImpl{row: rb, transition: tr}
}

func (rb *rowBuilderImpl) ToSelf() TransitionBuilder {
	return rb.To(rb.row.id)
}

// Always makes the row ignore its input
func (rb *rowBuilderImpl) Always(target StateID) RowBuilder {
	rb.To(target).Otherwise()
	return rb
}

func (rb *rowBuilderImpl) State(id StateID) RowBuilder {
	return rb.table.State(id)
}

func (rb *rowBuilderImpl) Build() (Table, error) {
	return rb.table.Build()
}

// transitionBuilderImpl implements TransitionBuilder
type transitionBuilderImpl struct {
	row        *rowBuilderImpl
	transition *transitionDef
}

func (tb *transitionBuilderImpl) On(inputs ...InputVector) TransitionBuilder {
	tb.transition.inputs = append(tb.transition.inputs, inputs...)
	return tb
}

// Otherwise accepts every input not claimed by an earlier transition
func (tb *transitionBuilderImpl) Otherwise() TransitionBuilder {
	tb.transition.otherwise = true
	return tb
}

func (tb *transitionBuilderImpl) When(guard InputGuard) TransitionBuilder {
	tb.transition.guards = append(tb.transition.guards, guard)
	return tb
}

func (tb *transitionBuilderImpl) Unless(guard InputGuard) TransitionBuilder {
	return tb.When(func(in InputVector) bool {
		return !guard(in)
	})
}

func (tb *transitionBuilderImpl) To(target StateID) TransitionBuilder {
	return tb.row.To(target)
}

func (tb *transitionBuilderImpl) ToSelf() TransitionBuilder {
	return tb.row.ToSelf()
}

func (tb *transitionBuilderImpl) State(id StateID) RowBuilder {
	return tb.row.State(id)
}

func (tb *transitionBuilderImpl) Build() (Table, error) {
	return tb.row.Build()
}
