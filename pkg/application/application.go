package application

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/landchain-vn/landchain/pkg/eventbus"
)

// Controller is a self-registering group of HTTP routes.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type ApplicationOptions struct {
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

type Application interface {
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
}

func New(opts *ApplicationOptions) Application {
	return &application{
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
	}
}

type application struct {
	controllers    map[string]Controller
	keys           []string
	middleware     []mux.MiddlewareFunc
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
}

func (app *application) Controllers() []Controller {
	out := make([]Controller, 0, len(app.keys))
	for _, key := range app.keys {
		out = append(out, app.controllers[key])
	}
	return out
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

// RegisterControllers keeps registration order and replaces a controller
// re-registered under the same key.
func (app *application) RegisterControllers(controllers ...Controller) {
	if app.controllers == nil {
		app.controllers = make(map[string]Controller)
	}
	for _, c := range controllers {
		if _, exists := app.controllers[c.Key()]; !exists {
			app.keys = append(app.keys, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}
