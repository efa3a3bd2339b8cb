package main

import (
	"fmt"
)

// WordsCmd prints raw generator output
type WordsCmd struct {
	SeedFlags
	Count int `short:"n" default:"4" help:"Number of words"`
}

func (c *WordsCmd) Run(g *Globals) error {
	spec, err := c.Spec(g.Env)
	if err != nil {
		return err
	}
	logger := g.Logger()
	logger.Debug().Stringer("seed", spec).Int("count", c.Count).Msg("Generating words")

	gen := spec.New()
	w := g.out()
	for i := 0; i < c.Count; i++ {
		if _, err := fmt.Fprintf(w, "0x%016x\n", gen.Next()); err != nil {
			return err
		}
	}
	return nil
}
