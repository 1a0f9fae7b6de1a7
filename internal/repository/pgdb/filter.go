package pgdb

import (
	"fmt"
	"strings"

	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
)

// buildWhere собирает условие WHERE из критериев поиска. Условия
// соединяются через AND, значения всегда уходят параметрами запроса.
// Имена колонок берутся только из allowed, чужие поля отклоняются.
// Пустой набор критериев даёт пустое условие.
func buildWhere(criteria usecase.Criteria, allowed map[string]string) (string, []any, error) {
	var (
		conds []string
		args  []any
	)

	for _, c := range criteria {
		col, ok := allowed[c.Field]
		if !ok {
			return "", nil, e.Wrap(fmt.Sprintf("unknown search field %q", c.Field), e.ErrStatusBadRequest)
		}

		args = append(args, c.Value)

		switch c.Kind {
		case usecase.MatchSubstring:
			conds = append(conds, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", col, len(args)))
		case usecase.MatchEquals:
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		default:
			return "", nil, e.Wrap(fmt.Sprintf("unknown match kind %d", c.Kind), e.ErrStatusBadRequest)
		}
	}

	if len(conds) == 0 {
		return "", nil, nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
