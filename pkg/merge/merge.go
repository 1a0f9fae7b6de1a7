// Package merge реализует частичное обновление сущностей: заданные поля патча
// переносятся в сущность, отсутствующие (nil) сохраняют прежнее значение.
// Идентификаторы и неизменяемые поля в правила не включаются и потому
// не могут быть затронуты патчем.
package merge

// Op — отложенное присваивание одного поля сущности E.
type Op[E any] func(dst *E) bool

// Set возвращает правило: если value задано, поле field получает *value.
func Set[E, V any](field func(*E) *V, value *V) Op[E] {
	return func(dst *E) bool {
		if value == nil {
			return false
		}

		*field(dst) = *value
		return true
	}
}

// Apply применяет правила к сущности по порядку.
// Возвращает true, если хотя бы одно поле было присвоено.
// Повторное применение того же патча даёт тот же результат.
func Apply[E any](dst *E, ops ...Op[E]) bool {
	changed := false
	for _, op := range ops {
		if op(dst) {
			changed = true
		}
	}

	return changed
}
