package application

import (
	"fmt"
	"reflect"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/configuration"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
)

// Module registers its services into an Application.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the shared runtime for one CLI invocation: configuration,
// transport, event bus, localizer and a service registry keyed by type.
type Application interface {
	Config() *configuration.Configuration
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Client() *portal.Client
	Bundle() *i18n.Bundle
	Translator() *intl.Translator
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

type ApplicationOptions struct {
	Config   *configuration.Configuration
	Logger   *logrus.Logger
	EventBus eventbus.EventBus
	Client   *portal.Client
	Bundle   *i18n.Bundle
	Language string
}

func New(opts *ApplicationOptions) Application {
	logger := opts.Logger
	if logger == nil && opts.Config != nil {
		logger = opts.Config.Logger()
	}
	bus := opts.EventBus
	if bus == nil {
		bus = eventbus.NewEventPublisher(logger)
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = intl.MustLoadBundle()
	}
	lang := opts.Language
	if lang == "" && opts.Config != nil {
		lang = opts.Config.Language
	}
	return &application{
		config:         opts.Config,
		logger:         logger,
		eventPublisher: bus,
		client:         opts.Client,
		bundle:         bundle,
		translator:     intl.NewTranslator(bundle, lang),
		services:       make(map[reflect.Type]interface{}),
	}
}

type application struct {
	config         *configuration.Configuration
	logger         *logrus.Logger
	eventPublisher eventbus.EventBus
	client         *portal.Client
	bundle         *i18n.Bundle
	translator     *intl.Translator
	services       map[reflect.Type]interface{}
}

func (app *application) Config() *configuration.Configuration {
	return app.config
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Client() *portal.Client {
	return app.client
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) Translator() *intl.Translator {
	return app.translator
}

// RegisterServices registers services by their pointed-to type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}
