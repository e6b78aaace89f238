package decide

import (
	"sort"

	"github.com/pkg/errors"
)

const DefaultSelector = "path-planner"

// AssistantInfo: what the browser shows in the assistant picker.
type AssistantInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

var assistantInfo = map[string]AssistantInfo{
	"path-planner":  {ID: "path-planner", Name: "Decision Bot", Description: "Inspiration: Decisive by Chip & Dan Heath"},
	"atomic-habits": {ID: "atomic-habits", Name: "Habit Doctor", Description: "Inspiration: Atomic Habits by James Clear"},
	"essentialist":  {ID: "essentialist", Name: "Essentialist", Description: "Inspiration: Essentialism by Greg McKeown"},
	"flow-zone":     {ID: "flow-zone", Name: "Flow Zone"},
}

// Catalog maps logical selectors to provider assistant ids.
// Built once at startup, read-only afterwards.
type Catalog struct {
	ids      map[string]string
	fallback string
}

func NewCatalog(ids map[string]string, defaultSelector string) (*Catalog, error) {
	if len(ids) == 0 {
		return nil, errors.New("assistant catalog is empty")
	}
	if defaultSelector == "" {
		defaultSelector = DefaultSelector
	}

	copied := make(map[string]string, len(ids))
	for sel, id := range ids {
		if sel == "" || id == "" {
			return nil, errors.Errorf("assistant catalog: empty selector or id (%q=%q)", sel, id)
		}
		copied[sel] = id
	}

	if _, ok := copied[defaultSelector]; !ok {
		return nil, errors.Errorf("assistant catalog: default selector %q is not configured", defaultSelector)
	}

	return &Catalog{ids: copied, fallback: defaultSelector}, nil
}

// Resolve returns the provider id for selector; empty selector means the default.
func (c *Catalog) Resolve(selector string) (string, error) {
	if selector == "" {
		selector = c.fallback
	}
	id, ok := c.ids[selector]
	if !ok {
		return "", &ConfigError{Selector: selector}
	}
	return id, nil
}

func (c *Catalog) Default() string {
	return c.fallback
}

// List returns the configured selectors, sorted.
func (c *Catalog) List() []AssistantInfo {
	out := make([]AssistantInfo, 0, len(c.ids))
	for sel := range c.ids {
		info, ok := assistantInfo[sel]
		if !ok {
			info = AssistantInfo{ID: sel, Name: sel}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
