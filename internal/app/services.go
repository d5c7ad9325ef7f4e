package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/patchbridge-backend/internal/data/aggregates"
	"github.com/yungbote/patchbridge-backend/internal/data/repos"
	"github.com/yungbote/patchbridge-backend/internal/observability"
	"github.com/yungbote/patchbridge-backend/internal/patch"
	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
	"github.com/yungbote/patchbridge-backend/internal/services"
)

type Services struct {
	Authors  services.AuthorService
	Books    services.BookService
	Notifier services.ChangeNotifier
}

func wireServices(database *gorm.DB, log *logger.Logger, metrics *observability.Metrics, reposet repos.Set, clients Clients) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:    database,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	authorAgg := aggregates.NewAuthorAggregate(aggregates.AuthorAggregateDeps{
		Base:        base,
		Authors:     reposet.Authors,
		PatchEvents: reposet.PatchEvents,
	})
	bookAgg := aggregates.NewBookAggregate(aggregates.BookAggregateDeps{
		Base:        base,
		Books:       reposet.Books,
		Authors:     reposet.Authors,
		PatchEvents: reposet.PatchEvents,
	})

	var notifier services.ChangeNotifier
	if clients.ChangeBus != nil {
		notifier = services.NewBusNotifier(log, clients.ChangeBus, metrics)
	} else {
		notifier = services.NewNopNotifier()
	}

	applier := patch.NewApplier(log, metrics)
	return Services{
		Authors:  services.NewAuthorService(log, reposet.Authors, authorAgg, applier, notifier),
		Books:    services.NewBookService(log, reposet.Books, bookAgg, applier, notifier),
		Notifier: notifier,
	}
}
