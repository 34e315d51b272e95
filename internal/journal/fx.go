package journal

import (
	"github.com/sunugrid/voltara/internal/journal/repository"
	"github.com/sunugrid/voltara/internal/journal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("journal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
