package dashboard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ettle/strcase"
)

// PanelHook lets packages register panel definitions/builders during init().
type PanelHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PanelHook
)

// RegisterPanelHook registers a hook executed against new registries.
func RegisterPanelHook(h PanelHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements PanelRegistry with hook + manifest support.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]PanelDefinition
	builders    map[string]PanelBuilder
	order       []string
}

// NewRegistry builds a registry pre-loaded with the default panel set and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]PanelDefinition{},
		builders:    map[string]PanelBuilder{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, def := range DefaultPanelDefinitions() {
		_ = r.RegisterDefinition(def)
		if builder, ok := defaultBuilders[def.Code]; ok {
			_ = r.RegisterBuilder(def.Code, builder)
		}
	}
}

// ApplyHooks executes registered panel hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores panel metadata. An empty display name falls back
// to a title-cased form of the code.
func (r *Registry) RegisterDefinition(def PanelDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("panel definition code is required")
	}
	if def.Name == "" {
		def.Name = strcase.ToCase(def.Code, strcase.TitleCase, ' ')
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[def.Code]; !ok {
		r.order = append(r.order, def.Code)
	}
	r.definitions[def.Code] = def
	return nil
}

// RegisterBuilder associates a builder with a definition.
func (r *Registry) RegisterBuilder(code string, builder PanelBuilder) error {
	if code == "" {
		return fmt.Errorf("panel definition code is required to register builder")
	}
	if builder == nil {
		return fmt.Errorf("panel builder cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("panel definition %s not found", code)
	}
	r.builders[code] = builder
	return nil
}

// Definition fetches a panel definition by code.
func (r *Registry) Definition(code string) (PanelDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Definitions returns all registered definitions in registration order.
func (r *Registry) Definitions() []PanelDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]PanelDefinition, 0, len(r.order))
	for _, code := range r.order {
		defs = append(defs, r.definitions[code])
	}
	return defs
}

// Codes returns every registered code, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.definitions))
	for code := range r.definitions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// BuildPanels instantiates one panel per definition that has a builder, in
// registration order. Definitions without a builder are skipped so a manifest
// can describe panels served elsewhere.
func (r *Registry) BuildPanels(deps BuilderDeps) ([]Panel, error) {
	r.mu.RLock()
	codes := make([]string, len(r.order))
	copy(codes, r.order)
	r.mu.RUnlock()

	panels := make([]Panel, 0, len(codes))
	for _, code := range codes {
		r.mu.RLock()
		def := r.definitions[code]
		builder, ok := r.builders[code]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		if def.Config != nil {
			if err := ValidatePanelConfig(def, def.Config); err != nil {
				return nil, fmt.Errorf("panel %s: %w", code, err)
			}
		}
		panel, err := builder(def, deps)
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", code, err)
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

var defaultBuilders = map[string]PanelBuilder{
	PanelOverview:       NewOverviewPanel,
	PanelRevenueTrends:  NewRevenueTrendsPanel,
	PanelOrderStatus:    NewOrderStatusPanel,
	PanelCustomerTrends: NewCustomerTrendsPanel,
	PanelAOVTrends:      NewAOVTrendsPanel,
	PanelTopCustomers:   NewTopCustomersPanel,
	PanelTopProducts:    NewTopProductsPanel,
	PanelFunnel:         NewFunnelPanel,
	PanelOrdersTable:    NewOrdersPanel,
}
