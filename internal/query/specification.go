package query

// Include represents a relation path that should be loaded eagerly alongside the primary records
// (i.e. "photos" or "sender.photos")
type Include string

// Order represents the ordering of a collection query by a single field
type Order struct {
	Field      Field
	Descending bool
}

// Specification represents a declarative description of a single collection query: its criteria, the relations to
// load eagerly, its ordering and an optional paging window.
// A specification is immutable; use a Builder to create one.
type Specification[T any] struct {
	criteria      Condition
	includes      []Include
	order         *Order
	skip          int
	take          int
	pagingEnabled bool
}

// Criteria returns the criteria records have to satisfy. nil matches every record.
func (spec *Specification[T]) Criteria() Condition {
	return spec.criteria
}

// Includes returns the relation paths to load eagerly in the order they were added
func (spec *Specification[T]) Includes() []Include {
	cpy := make([]Include, len(spec.includes))
	copy(cpy, spec.includes)
	return cpy
}

// Order returns the configured ordering and whether there is one
func (spec *Specification[T]) Order() (Order, bool) {
	if spec.order == nil {
		return Order{}, false
	}
	return *spec.order, true
}

// Skip returns the amount of records to skip. Only meaningful if PagingEnabled returns true.
func (spec *Specification[T]) Skip() int {
	return spec.skip
}

// Take returns the maximum amount of records to return. Only meaningful if PagingEnabled returns true.
func (spec *Specification[T]) Take() int {
	return spec.take
}

// PagingEnabled returns whether a paging window was applied
func (spec *Specification[T]) PagingEnabled() bool {
	return spec.pagingEnabled
}

// Builder configures a Specification.
// The builder holds a single ordering slot: a later call to OrderBy or OrderByDescending replaces an earlier one, so a
// built specification never carries an ascending and a descending ordering at the same time.
type Builder[T any] struct {
	spec Specification[T]
}

// NewBuilder creates a new specification builder using the given criteria (nil matches every record)
func NewBuilder[T any](criteria Condition) *Builder[T] {
	return &Builder[T]{
		spec: Specification[T]{criteria: criteria},
	}
}

// Include adds relation paths to load eagerly
func (builder *Builder[T]) Include(includes ...Include) *Builder[T] {
	builder.spec.includes = append(builder.spec.includes, includes...)
	return builder
}

// OrderBy orders the records ascending by the given field
func (builder *Builder[T]) OrderBy(field Field) *Builder[T] {
	builder.spec.order = &Order{Field: field}
	return builder
}

// OrderByDescending orders the records descending by the given field
func (builder *Builder[T]) OrderByDescending(field Field) *Builder[T] {
	builder.spec.order = &Order{Field: field, Descending: true}
	return builder
}

// Page applies a paging window. Negative values are treated as 0.
// Once applied, paging stays enabled for the specification.
func (builder *Builder[T]) Page(skip, take int) *Builder[T] {
	if skip < 0 {
		skip = 0
	}
	if take < 0 {
		take = 0
	}
	builder.spec.skip = skip
	builder.spec.take = take
	builder.spec.pagingEnabled = true
	return builder
}

// Build returns an immutable snapshot of the configured specification.
// The builder may be used further without affecting already built specifications.
func (builder *Builder[T]) Build() *Specification[T] {
	spec := builder.spec
	spec.includes = make([]Include, len(builder.spec.includes))
	copy(spec.includes, builder.spec.includes)
	if builder.spec.order != nil {
		order := *builder.spec.order
		spec.order = &order
	}
	return &spec
}
