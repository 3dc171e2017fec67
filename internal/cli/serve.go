package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tgienger/stickyjar/internal/web"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board as a local JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			if addr == "" {
				addr = sess.cfg.Web.Addr
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			stop := sess.lifecycle.Listen(cancel)
			defer stop()

			cmd.Printf("Listening on http://%s\n", addr)
			return web.NewServer(sess.store, sess.logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config web.addr)")
	return cmd
}
