package usecase

// MatchKind — способ сравнения значения критерия с полем записи.
type MatchKind int8

const (
	// MatchSubstring — вхождение подстроки без учёта регистра.
	MatchSubstring MatchKind = iota
	// MatchEquals — точное совпадение.
	MatchEquals
)

// Criterion — одно условие поиска. Условия соединяются конъюнкцией:
// запись попадает в выдачу, только если удовлетворяет всем критериям.
type Criterion struct {
	Field string
	Kind  MatchKind
	Value any
}

// Criteria — набор условий поиска. Пустой набор означает "все записи".
type Criteria []Criterion

// Text добавляет подстрочный критерий по текстовому полю.
// Нулевой указатель означает "критерий не задан" и набор не меняет.
func Text(c Criteria, field string, value *string) Criteria {
	if value == nil {
		return c
	}

	return append(c, Criterion{Field: field, Kind: MatchSubstring, Value: *value})
}

// Eq добавляет критерий точного совпадения.
// Нулевой указатель означает "критерий не задан" и набор не меняет.
func Eq[T any](c Criteria, field string, value *T) Criteria {
	if value == nil {
		return c
	}

	return append(c, Criterion{Field: field, Kind: MatchEquals, Value: *value})
}
