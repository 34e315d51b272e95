package meter

import (
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	"github.com/sunugrid/voltara/internal/meter/repository"
	"github.com/sunugrid/voltara/internal/meter/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meter.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(s meterdomain.Service) meterdomain.Gateway { return s }),
)
