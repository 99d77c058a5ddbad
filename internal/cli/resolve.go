package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/palette/internal/model"
)

// resolve finds the item arg refers to: a full id, then an exact
// case-insensitive name, then a unique id prefix
func resolve[T any](items []T, arg, what string, key func(T) (id, name string)) (T, error) {
	var zero T
	if arg == "" {
		return zero, fmt.Errorf("%s required", what)
	}

	for _, it := range items {
		if id, _ := key(it); id == arg {
			return it, nil
		}
	}

	var named []T
	for _, it := range items {
		if _, name := key(it); strings.EqualFold(name, arg) {
			named = append(named, it)
		}
	}
	switch len(named) {
	case 1:
		return named[0], nil
	case 0:
	default:
		return zero, fmt.Errorf("%s %q is ambiguous; use its id", what, arg)
	}

	var prefixed []T
	for _, it := range items {
		if id, _ := key(it); strings.HasPrefix(id, arg) {
			prefixed = append(prefixed, it)
		}
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0], nil
	case 0:
		return zero, fmt.Errorf("%s %q not found", what, arg)
	default:
		return zero, fmt.Errorf("%s id prefix %q matches %d items", what, arg, len(prefixed))
	}
}

func resolveBoard(boards []model.Board, arg string) (model.Board, error) {
	return resolve(boards, arg, "board", func(b model.Board) (string, string) { return b.ID, b.Name })
}

func resolveColumn(b model.Board, arg string) (model.Column, error) {
	return resolve(b.Columns, arg, "column", func(c model.Column) (string, string) { return c.ID, c.Title })
}

func resolveCard(col model.Column, arg string) (model.Card, error) {
	return resolve(col.Cards, arg, "card", func(c model.Card) (string, string) { return c.ID, c.Title })
}

// shortID trims an id for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func resolveNotification(items []model.Notification, arg string) (model.Notification, error) {
	return resolve(items, arg, "notification", func(n model.Notification) (string, string) { return n.ID, n.Title })
}
