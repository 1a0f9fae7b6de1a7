package domain

import "github.com/sarabarbaraam/CompraBarbara/pkg/e"

// ItemType — категория товара
type ItemType string

const (
	TypeFood   ItemType = "FOOD"
	TypeBooks  ItemType = "BOOKS"
	TypeHome   ItemType = "HOME"
	TypeSports ItemType = "SPORTS"
	TypePets   ItemType = "PETS"
)

// ParseItemType валидирует строковое представление категории.
func ParseItemType(s string) (ItemType, error) {
	switch t := ItemType(s); t {
	case TypeFood, TypeBooks, TypeHome, TypeSports, TypePets:
		return t, nil
	default:
		return "", e.Wrap(s, e.ErrInvalidItemType)
	}
}

func (t ItemType) String() string {
	return string(t)
}
