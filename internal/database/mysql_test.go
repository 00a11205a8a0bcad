package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormConfigTranslatesDriverErrors(t *testing.T) {
	// A racing duplicate insert surfaces as MySQL error 1062; only with
	// error translation enabled does it become gorm.ErrDuplicatedKey,
	// which the friendship and like repositories map to a conflict.
	cfg := gormConfig()
	assert.True(t, cfg.TranslateError)
}
