package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fchimpan/matrix-rain/internal/export"
)

func newRenderCmd(deps Deps, sf *sessionFlags) *cobra.Command {
	var opts export.Options

	c := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files without a display",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Render == nil {
				return fmt.Errorf("deps.Render is nil")
			}
			s, err := loadSession(cmd, deps, *sf)
			if err != nil {
				return err
			}
			defer func() { _ = s.Logger.Sync() }()

			paths, err := deps.Render(cmd.Context(), s, opts)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			fmt.Fprintf(deps.Stdout, "wrote %d frames to %s\n", len(paths), opts.Dir)
			return nil
		},
	}

	c.Flags().IntVarP(&opts.Frames, "frames", "n", 100, "number of frames to render")
	c.Flags().IntVar(&opts.Width, "width", 640, "image width in pixels")
	c.Flags().IntVar(&opts.Height, "height", 400, "image height in pixels")
	c.Flags().StringVarP(&opts.Dir, "out", "o", "frames", "output directory")
	return c
}
