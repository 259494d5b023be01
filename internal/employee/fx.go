package employee

import (
	"github.com/founderspc/somanager/internal/employee/repository"
	"github.com/founderspc/somanager/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
