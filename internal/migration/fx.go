package migration

import (
	catalogdomain "github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/founderspc/somanager/internal/config"
	customerdomain "github.com/founderspc/somanager/internal/customer/domain"
	employeedomain "github.com/founderspc/somanager/internal/employee/domain"
	invoicedomain "github.com/founderspc/somanager/internal/invoice/domain"
	serviceorderdomain "github.com/founderspc/somanager/internal/serviceorder/domain"
	sitedomain "github.com/founderspc/somanager/internal/site/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&catalogdomain.ServiceCatalog{},
				&customerdomain.Customer{},
				&customerdomain.PaymentProfile{},
				&employeedomain.Employee{},
				&sitedomain.Site{},
				&sitedomain.SiteService{},
				&serviceorderdomain.ServiceOrder{},
				&serviceorderdomain.SOService{},
				&serviceorderdomain.SOAssignment{},
				&invoicedomain.Invoice{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
