package combo

// Overrider intercepts the changes proposed by the default reducer.
//
// Override receives the state before the transition, the kind of the action
// and the proposed changes. Whatever it returns replaces the proposed
// changes entirely; returning proposed unchanged keeps the default behavior,
// and returning an empty Changes drops the transition.
type Overrider[T comparable] interface {
	Override(s State[T], kind Kind, proposed Changes[T]) Changes[T]
}

// OverrideFunc adapts a function to an Overrider.
type OverrideFunc[T comparable] func(s State[T], kind Kind, proposed Changes[T]) Changes[T]

// Override calls f.
func (f OverrideFunc[T]) Override(s State[T], kind Kind, proposed Changes[T]) Changes[T] {
	return f(s, kind, proposed)
}

// Reducer computes proposed changes. [Reduce] is the default one.
type Reducer[T comparable] func(env Env[T], s State[T], a Action) Changes[T]

// Pipeline runs a reducer followed by an optional override.
type Pipeline[T comparable] struct {
	// If nil, Reduce is used.
	Reducer  Reducer[T]
	Override Overrider[T]
}

// Run computes the final changes for action a.
func (p Pipeline[T]) Run(env Env[T], s State[T], a Action) Changes[T] {
	reduce := p.Reducer
	if reduce == nil {
		reduce = Reduce[T]
	}
	proposed := reduce(env, s, a)
	if p.Override == nil {
		return proposed
	}
	return p.Override.Override(s, a.Kind(), proposed)
}
