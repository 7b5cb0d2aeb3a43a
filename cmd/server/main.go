package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/landchain-vn/landchain/modules/registry"
	"github.com/landchain-vn/landchain/modules/registry/infrastructure/fabric"
	"github.com/landchain-vn/landchain/pkg/application"
	"github.com/landchain-vn/landchain/pkg/configuration"
	"github.com/landchain-vn/landchain/pkg/eventbus"
	"github.com/landchain-vn/landchain/pkg/metrics"
	"github.com/landchain-vn/landchain/pkg/middleware"
	"github.com/landchain-vn/landchain/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	gateway, err := fabric.NewGateway(conf)
	if err != nil {
		log.Fatalf("failed to connect to the fabric gateway: %v", err)
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			logger.WithError(err).Warn("failed to close the gateway connection")
		}
	}()

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.Cors(conf.AllowedOriginList()...),
		middleware.ProvideIdentity(),
	)

	registry.Register(app, conf, gateway)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := server.NewHTTPServer(app).Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
