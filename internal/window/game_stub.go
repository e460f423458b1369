//go:build !ebiten

package window

// Run reports that the window backend was not compiled in.
func Run(opts Options) error {
	opts.setDefaults()
	return ErrUnavailable
}
