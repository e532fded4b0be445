package main

import (
	"fmt"

	"github.com/lox/sidelined/internal/formation"
)

// FormationsCmd lists the built-in formation templates
type FormationsCmd struct{}

func (c *FormationsCmd) Run() error {
	for _, name := range formation.Names() {
		f, err := formation.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %2d players  %v\n", f.Name, f.FieldSize(), f.Slots)
	}
	return nil
}
