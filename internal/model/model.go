package model

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Dataref{},
	&Command{},
	&Conversion{},
}

////////////////////////
// REFERENCE MODELS
////////////////////////

// Dataref is one entry of a dataref definition file. RefID is set when the
// entry carries a numeric id that object files may use in place of the key.
type Dataref struct {
	gorm.Model
	RefID       *uint64 `json:"id,omitempty" gorm:"uniqueIndex"`
	Key         string  `json:"key" gorm:"size:255;index"`
	Type        string  `json:"type,omitempty" gorm:"size:64"`
	Writable    bool    `json:"writable"`
	Units       string  `json:"units,omitempty" gorm:"size:64"`
	Description string  `json:"description,omitempty" gorm:"size:1024"`
}

func (*Dataref) TableName() string {
	return "datarefs"
}

// Command is one entry of a command definition file.
type Command struct {
	gorm.Model
	RefID       *uint64 `json:"id,omitempty" gorm:"uniqueIndex"`
	Key         string  `json:"key" gorm:"size:255;index"`
	Description string  `json:"description,omitempty" gorm:"size:1024"`
}

func (*Command) TableName() string {
	return "commands"
}

////////////////////////
// CONVERSION MODELS
////////////////////////

// Conversion records one read-and-write run over an object file.
type Conversion struct {
	ID         uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time      `json:"time" gorm:"index:idx_conversion_time"`
	Source     string         `json:"source" gorm:"size:1024"`
	Target     string         `json:"target" gorm:"size:1024"`
	DurationMs float64        `json:"durationMs"`
	Lines      int            `json:"lines"`
	Warnings   int            `json:"warnings"`
	Errors     int            `json:"errors"`
	Footprint  string         `json:"footprint" gorm:"size:2048"` // WKT of the XZ bounding polygon
	Area       float64        `json:"area"`
	ReadStats  datatypes.JSON `json:"readStats"`
	WriteStats datatypes.JSON `json:"writeStats"`
	Error      sql.NullString `json:"error" gorm:"default:NULL"`
}

func (*Conversion) TableName() string {
	return "conversions"
}

// Failed reports whether the conversion stopped with an error.
func (c *Conversion) Failed() bool {
	return c.Error.Valid
}
