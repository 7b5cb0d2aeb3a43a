package registry

import (
	"github.com/landchain-vn/landchain/modules/registry/domain/ledger"
	"github.com/landchain-vn/landchain/modules/registry/presentation/controllers"
	"github.com/landchain-vn/landchain/modules/registry/services"
	"github.com/landchain-vn/landchain/pkg/application"
	"github.com/landchain-vn/landchain/pkg/configuration"
)

// Register wires the land-registry module into the application: the
// transaction service over the given ledger client, the notification fanout
// on the event bus and the HTTP controller.
func Register(app application.Application, conf *configuration.Configuration, client ledger.Client) *services.TransactionService {
	svc := services.NewTransactionService(client, app.EventPublisher(), conf)

	notifier := services.NewLogNotifier(app.Logger())
	services.NewNotificationService(notifier, app.Logger()).Register(app.EventPublisher())

	app.RegisterControllers(controllers.NewTransactionController(svc))
	return svc
}
