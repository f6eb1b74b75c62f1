package registry

import (
	"github.com/Bange254/Bttshoes/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext carries the shared resources a module needs at init.
type ModuleContext struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

// Module is the unit of registration: each domain wires its own
// repositories, services, handlers and routes in Init.
type Module interface {
	// Name returns the module name.
	Name() string

	// Init performs dependency injection and route registration.
	Init(ctx *ModuleContext) error

	// Priority orders initialisation (lower runs first).
	Priority() int
}

var moduleRegistry = make(map[string]Module)

// Register adds a module to the registry, typically from an init func.
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// GetModules returns all registered modules.
func GetModules() map[string]Module {
	return moduleRegistry
}

// InitModules initialises all modules in priority order.
func InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}

	// bubble sort; the module count is tiny
	for i := 0; i < len(modules); i++ {
		for j := i + 1; j < len(modules); j++ {
			if modules[i].Priority() > modules[j].Priority() {
				modules[i], modules[j] = modules[j], modules[i]
			}
		}
	}

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}

	return nil
}
