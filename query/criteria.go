package query

// Op identifies a filter comparison operator.
type Op string

const (
	OpEq       Op = "eq"
	OpNeq      Op = "neq"
	OpContains Op = "contains"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpIn       Op = "in"
)

// Criterion is a single field/operator/value filter condition. A query's
// filter set is a conjunction: every criterion must hold for an item to pass.
type Criterion struct {
	Field string `json:"field"`
	Op    Op     `json:"operator"`
	Value any    `json:"value"`
}

// Eq matches items whose field equals value.
func Eq(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpEq, Value: value}
}

// Neq matches items whose field resolves and differs from value.
func Neq(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpNeq, Value: value}
}

// Contains matches string fields containing value as a substring and
// slice fields containing value as an element.
func Contains(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpContains, Value: value}
}

// Gte matches items whose field is ordered at or above value.
func Gte(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpGte, Value: value}
}

// Lte matches items whose field is ordered at or below value.
func Lte(field string, value any) Criterion {
	return Criterion{Field: field, Op: OpLte, Value: value}
}

// In matches items whose field equals one of the values.
func In(field string, values ...any) Criterion {
	return Criterion{Field: field, Op: OpIn, Value: values}
}

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Sort is a single-key sort specification. The zero value means "no sort":
// items keep their collection order.
type Sort struct {
	Field string `json:"field"`
	Order Order  `json:"order"`
}

// Asc sorts ascending on field.
func Asc(field string) Sort {
	return Sort{Field: field, Order: OrderAsc}
}

// Desc sorts descending on field.
func Desc(field string) Sort {
	return Sort{Field: field, Order: OrderDesc}
}
