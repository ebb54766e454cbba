package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const defaultInputType = "text"

// Category describes a searchable field type records are filed under.
type Category struct {
	id          uuid.UUID
	name        string
	description string
	inputType   string
}

// NewCategory validates and creates a Category. An empty input type means text.
func NewCategory(name, description, inputType string) (*Category, error) {
	c := &Category{id: uuid.New()}
	if err := c.Update(name, description, inputType); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields.
func (c *Category) Update(name, description, inputType string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	inputType = strings.ToLower(strings.TrimSpace(inputType))
	if inputType == "" {
		inputType = defaultInputType
	}
	c.name = name
	c.description = strings.TrimSpace(description)
	c.inputType = inputType
	return nil
}

// ReconstructCategory rebuilds a Category from persisted data.
func ReconstructCategory(id uuid.UUID, name, description, inputType string) *Category {
	return &Category{id: id, name: name, description: description, inputType: inputType}
}

func (c *Category) ID() uuid.UUID       { return c.id }
func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }
func (c *Category) InputType() string   { return c.inputType }
