package core

import (
	"context"
	"fmt"
	"sort"
)

// FlowFunc is one named composition over the service graph. It reads
// ctx.Input, calls out through ctx.Client, and fills ctx.Output.
type FlowFunc func(ctx context.Context, fc *FlowContext) error

type Engine struct {
	flows map[string]FlowFunc
}

func NewEngine(flows map[string]FlowFunc) *Engine {
	return &Engine{flows: flows}
}

func (e *Engine) Run(ctx context.Context, flowName string, fc *FlowContext) error {
	flow, exists := e.flows[flowName]
	if !exists {
		return fmt.Errorf("unsupported flow: %v", flowName)
	}
	if err := flow(ctx, fc); err != nil {
		return fmt.Errorf("flow %s failed: %w", flowName, err)
	}
	return nil
}

func (e *Engine) FlowNames() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
