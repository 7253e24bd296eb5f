package model

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Dataref", &Dataref{}, "datarefs"},
		{"Command", &Command{}, "commands"},
		{"Conversion", &Conversion{}, "conversions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModels(t *testing.T) {
	assert.Len(t, DatabaseModels, 3)
}

func TestConversion_Failed(t *testing.T) {
	c := Conversion{}
	assert.False(t, c.Failed())

	c.Error = sql.NullString{String: "unexpected end of file", Valid: true}
	assert.True(t, c.Failed())
}
