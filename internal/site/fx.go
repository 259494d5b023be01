package site

import (
	"github.com/founderspc/somanager/internal/site/repository"
	"github.com/founderspc/somanager/internal/site/service"
	"go.uber.org/fx"
)

var Module = fx.Module("site.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
