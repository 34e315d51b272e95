package purchase

import (
	"github.com/sunugrid/voltara/internal/purchase/repository"
	"github.com/sunugrid/voltara/internal/purchase/service"
	"go.uber.org/fx"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
