package content

import "time"

// Schema names inside the embedded schemas directory
const (
	SchemaAreaConfig        = "area_config.schema.json"
	SchemaLevelRequirements = "level_requirements.schema.json"
	SchemaRewardTable       = "reward_table.schema.json"
	SchemaMobTable          = "mob_table.schema.json"
	SchemaItemProps         = "item_props.schema.json"
)

const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = time.Minute
)

const (
	ErrMsgInvalidBlob      = "%w: %s %s: %w"
	ErrMsgUnknownAreaType  = "%w: area %s has unknown type %q"
	ErrMsgLoadAreaFailed   = "failed to load area %s: %w"
	ErrMsgLoadLevelFailed  = "failed to load level %d of area %s: %w"
	ErrMsgLoadItemFailed   = "failed to load item %s: %w"
	ErrMsgAreaNotFoundFmt  = "%w: %s"
	ErrMsgLevelNotFoundFmt = "%w: %s level %d"
	ErrMsgItemNotFoundFmt  = "%w: %s"
)
