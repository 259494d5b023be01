package catalog

import (
	"github.com/founderspc/somanager/internal/catalog/repository"
	"github.com/founderspc/somanager/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
