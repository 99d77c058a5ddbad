package board

import (
	"context"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/model"
)

// IdentitySource supplies the current identity and reports changes to it
type IdentitySource interface {
	Current() (model.Identity, bool)
	Subscribe(fn func(ident model.Identity, ok bool)) (cancel func())
}

// Bind loads the current identity's boards and keeps the Store following
// src: a present identity triggers a full reload, an absent one a Clear.
func (s *Store) Bind(ctx context.Context, src IdentitySource) (unbind func()) {
	follow := func(ident model.Identity, ok bool) {
		if !ok {
			s.Clear()
			return
		}
		if err := s.Load(ctx, ident); err != nil {
			s.log.Warn("Reload after identity change failed", logger.F("error", err))
		}
	}

	ident, ok := src.Current()
	follow(ident, ok)
	return src.Subscribe(follow)
}
