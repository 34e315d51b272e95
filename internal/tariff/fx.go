package tariff

import (
	"github.com/sunugrid/voltara/internal/tariff/repository"
	"github.com/sunugrid/voltara/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
