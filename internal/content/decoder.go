package content

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/validation"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// Schemas exposes the embedded content schemas
func Schemas() fs.FS {
	sub, _ := fs.Sub(schemaFiles, "schemas")
	return sub
}

// Decoder turns stored rows into typed content. Every JSON blob is checked
// against its schema before it is decoded.
type Decoder struct {
	schemas validation.SchemaValidator
}

// NewDecoder creates a decoder over the embedded schemas
func NewDecoder() *Decoder {
	return &Decoder{schemas: validation.NewSchemaValidator(Schemas())}
}

var (
	emptyObject = []byte(`{}`)
	emptyTable  = []byte(`{"table":[]}`)
)

func orDefault(raw json.RawMessage, def []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def
	}
	return trimmed
}

func (d *Decoder) decode(raw []byte, schema, owner string, out any) error {
	if err := d.schemas.ValidateBytes(raw, schema); err != nil {
		return fmt.Errorf(ErrMsgInvalidBlob, domain.ErrInvalidContent, owner, schema, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf(ErrMsgInvalidBlob, domain.ErrInvalidContent, owner, schema, err)
	}
	return nil
}

// DecodeArea validates and decodes an area row
func (d *Decoder) DecodeArea(rec *domain.GameAreaRecord) (*domain.GameArea, error) {
	areaType := domain.AreaType(rec.Type)
	switch areaType {
	case domain.AreaTypeMine, domain.AreaTypeLagoon, domain.AreaTypeFight, domain.AreaTypeFarm:
	default:
		return nil, fmt.Errorf(ErrMsgUnknownAreaType, domain.ErrInvalidContent, rec.Key, rec.Type)
	}

	area := &domain.GameArea{ID: rec.ID, GuildID: rec.GuildID, Key: rec.Key, Name: rec.Name, Type: areaType}
	if err := d.decode(orDefault(rec.Config, emptyObject), SchemaAreaConfig, "area "+rec.Key, &area.Config); err != nil {
		return nil, err
	}
	return area, nil
}

// DecodeLevel validates and decodes a level row
func (d *Decoder) DecodeLevel(rec *domain.GameAreaLevelRecord) (*domain.GameAreaLevel, error) {
	lvl := &domain.GameAreaLevel{
		ID:            rec.ID,
		AreaID:        rec.AreaID,
		Level:         rec.Level,
		AvailableFrom: rec.AvailableFrom,
		AvailableTo:   rec.AvailableTo,
	}
	owner := fmt.Sprintf("level %s/%d", rec.AreaID, rec.Level)

	if err := d.decode(orDefault(rec.Requirements, emptyObject), SchemaLevelRequirements, owner, &lvl.Requirements); err != nil {
		return nil, err
	}
	if err := d.decode(orDefault(rec.Rewards, emptyTable), SchemaRewardTable, owner, &lvl.Rewards); err != nil {
		return nil, err
	}
	if err := d.decode(orDefault(rec.Mobs, emptyTable), SchemaMobTable, owner, &lvl.Mobs); err != nil {
		return nil, err
	}
	return lvl, nil
}

// DecodeItem validates and decodes an item row
func (d *Decoder) DecodeItem(rec *domain.ItemRecord) (*domain.ItemDefinition, error) {
	item := &domain.ItemDefinition{
		ID:        rec.ID,
		GuildID:   rec.GuildID,
		Key:       rec.Key,
		Name:      rec.Name,
		Stackable: rec.Stackable,
		Tags:      rec.Tags,
	}
	if err := d.decode(orDefault(rec.Props, emptyObject), SchemaItemProps, "item "+rec.Key, &item.Props); err != nil {
		return nil, err
	}
	return item, nil
}
