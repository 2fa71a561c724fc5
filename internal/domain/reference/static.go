package reference

import (
	"context"
	"embed"
	"fmt"
)

//go:embed fixtures/*.json
var fixtures embed.FS

// StaticSource serves the bundled fixture lists.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

func (s *StaticSource) Fetch(ctx context.Context, entity Entity) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := ParseEntity(string(entity)); err != nil {
		return nil, err
	}

	body, err := fixtures.ReadFile("fixtures/" + string(entity) + ".json")
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", entity, err)
	}
	return Decode(entity, body)
}
