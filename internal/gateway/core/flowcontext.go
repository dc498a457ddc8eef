package core

import (
	"fmt"
	"time"

	"airlock/pkg/client"
	"airlock/pkg/logger"
)

// FlowContext carries a single flow execution: caller input, scratch state
// shared between steps, and the output map returned to the caller. Client
// is the set of typed service clients the steps compose over.
type FlowContext struct {
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
	Log     *logger.Logger
}

func NewFlowContext(input map[string]any, client *client.Client, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  client,
		Log:     log,
	}
}

func (c *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := c.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", MissingParamErr(key)
	}
	return s, nil
}

func (c *FlowContext) ExtractInt(key string, fallback int) int {
	raw, ok := c.Input[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case float64:
		// JSON numbers decode as float64.
		return int(v)
	default:
		return fallback
	}
}

func (c *FlowContext) ExtractTime(key string) (time.Time, error) {
	s, err := c.ExtractString(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] is not a valid RFC3339 timestamp: %w", key, err)
	}
	return t, nil
}

func MissingParamErr(paramName string) error {
	return fmt.Errorf("required param [%v] is missing", paramName)
}
