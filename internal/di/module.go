package di

import (
	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/adapter/menucache"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/adapter/payment"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/app"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/logger"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify/broker"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/pkg/auth"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/handlers"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/router"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/storage/postgres"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/usecase"
)

// Module assembles the application graph. opts are appended last so callers
// can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		menucache.Module,
		payment.Module,
		notify.Module,
		broker.Module,
		usecase.Module,
		app.Module,
		fx.Provide(func(f *app.CampusFacade) handlers.CampusFacade { return f }),
		router.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
