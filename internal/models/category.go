package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category represents a spend category that objectives can be scoped to.
type Category struct {
	DefaultModel
	Name string `json:"name,omitempty"`
	Note string `json:"note,omitempty"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}
