package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/nugetbump/application"
	"github.com/rios0rios0/nugetbump/config"
	"github.com/rios0rios0/nugetbump/infrastructure/patcher"
	"github.com/rios0rios0/nugetbump/infrastructure/walker"
)

// injectService builds the service graph with DIG. Wiring errors are
// programming mistakes, so they panic.
func injectService(cfg *config.Config) *application.UpdateService {
	container := dig.New()

	constructors := []any{
		func() *config.Config { return cfg },
		patcher.NewProjectPatcher,
		walker.NewWalker,
		application.NewUpdateService,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			panic(err)
		}
	}

	var service *application.UpdateService
	if err := container.Invoke(func(s *application.UpdateService) {
		service = s
	}); err != nil {
		panic(err)
	}

	return service
}
