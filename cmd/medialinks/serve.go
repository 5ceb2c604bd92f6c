package main

import (
	"fmt"

	"github.com/fwojciec/medialinks/bulma"
	mlhttp "github.com/fwojciec/medialinks/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := mlhttp.NewServer(deps.Scraper, deps.Renderer, deps.Logger,
		mlhttp.WithAddr(c.Addr),
		mlhttp.WithAllowOrigin(c.AllowOrigin),
		mlhttp.WithStatic(bulma.StaticFS()),
	)
	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return server.Close()
}
