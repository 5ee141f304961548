package assets

import (
	"embed"
	"encoding/json"
	"sync"

	"github.com/harrisonog/arcraiders-go/internal/domain/event"
)

//go:embed workshop_levels.json event_descriptions.json
var files embed.FS

// EventDescriptionProvider serves the bundled per-event descriptions used
// when the event-timer API returns none. Lookups on a corrupt bundle simply
// miss.
type EventDescriptionProvider struct {
	once         sync.Once
	descriptions map[string]string
}

// Compile-time interface check
var _ event.DescriptionProvider = (*EventDescriptionProvider)(nil)

// NewEventDescriptionProvider creates a provider over the embedded data
func NewEventDescriptionProvider() *EventDescriptionProvider {
	return &EventDescriptionProvider{}
}

// Description returns the bundled description for an event name
func (p *EventDescriptionProvider) Description(eventName string) (string, bool) {
	p.once.Do(p.load)
	desc, ok := p.descriptions[eventName]
	return desc, ok
}

func (p *EventDescriptionProvider) load() {
	p.descriptions = make(map[string]string)

	raw, err := files.ReadFile("event_descriptions.json")
	if err != nil {
		return
	}
	var data struct {
		Descriptions []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"descriptions"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	for _, d := range data.Descriptions {
		p.descriptions[d.Name] = d.Description
	}
}
