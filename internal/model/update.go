package model

// BoardUpdate lists the board fields to change. A nil slot is left alone.
type BoardUpdate struct {
	Name       *string
	Color      *Color
	IsFavorite *bool
	Columns    *[]Column
}

// SetName returns an update that renames a board
func SetName(name string) BoardUpdate {
	return BoardUpdate{Name: &name}
}

// SetColor returns an update that recolors a board
func SetColor(color Color) BoardUpdate {
	return BoardUpdate{Color: &color}
}

// SetFavorite returns an update that sets the favorite flag
func SetFavorite(fav bool) BoardUpdate {
	return BoardUpdate{IsFavorite: &fav}
}

// SetColumns returns an update that replaces the whole column sequence
func SetColumns(cols []Column) BoardUpdate {
	cols = CloneColumns(cols)
	return BoardUpdate{Columns: &cols}
}

// IsEmpty reports whether the update changes nothing
func (u BoardUpdate) IsEmpty() bool {
	return u.Name == nil && u.Color == nil && u.IsFavorite == nil && u.Columns == nil
}

// Apply merges the update into b
func (u BoardUpdate) Apply(b *Board) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Color != nil {
		b.Color = *u.Color
	}
	if u.IsFavorite != nil {
		b.IsFavorite = *u.IsFavorite
	}
	if u.Columns != nil {
		b.Columns = CloneColumns(*u.Columns)
	}
}
