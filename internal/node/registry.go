package node

import (
	"context"
	"fmt"
	"sort"

	"docbridge/internal/config"
	"docbridge/internal/domain"
	"docbridge/internal/ocr"
	"docbridge/internal/port"
)

// Node is one executable workflow step. Run validates the execution's
// parameters, processes every record, and returns exactly one output record
// per input plus any trailing warning records.
type Node interface {
	Name() string
	Run(ctx context.Context, exec Execution) ([]domain.OutputRecord, error)
}

// Deps bundles the collaborators and configured defaults nodes draw on.
type Deps struct {
	Engine   ocr.Engine
	Invoker  port.ModelInvoker
	OCR      config.OCRConfig
	Converse config.ConverseConfig
}

// NodeFactory is a function that creates a Node from its dependencies.
type NodeFactory func(deps Deps) Node

// registry of node factories, populated by init() alongside each node
// implementation or explicitly via Register.
var factories = map[string]NodeFactory{}

// Register registers a node factory by name.
func Register(name string, factory NodeFactory) {
	factories[name] = factory
}

// New creates a Node by registered name.
func New(name string, deps Deps) (Node, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNode, name)
	}
	return factory(deps), nil
}

// Names lists the registered node names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
