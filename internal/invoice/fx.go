package invoice

import (
	"github.com/founderspc/somanager/internal/invoice/repository"
	"github.com/founderspc/somanager/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
