package translation

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
)

// FXModule provides a *BackTranslator, also exposed as a perturb.Translator.
// A *Config must be available in the container.
var FXModule = fx.Module("translation",
	fx.Provide(
		NewChatClient,
		NewBackTranslator,
		func(b *BackTranslator) perturb.Translator { return b },
	),
)
