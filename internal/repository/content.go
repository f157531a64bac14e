package repository

import (
	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/mob"
)

// Content defines the interface for catalog persistence: areas, levels,
// items and mob overrides as raw rows
type Content interface {
	content.Store
	mob.Store
}
