package main

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/quizpilot/internal/config"
	"github.com/spboyer/quizpilot/internal/desktop"
	"github.com/spboyer/quizpilot/internal/screen"
	"github.com/spf13/cobra"
)

func newLocateCommand() *cobra.Command {
	var (
		imagesDir  string
		screenshot string
	)

	cmd := &cobra.Command{
		Use:   "locate <reference image>",
		Short: "Report where a reference image matches on screen",
		Long: `Match a reference image against the screen, or against a saved screenshot,
and print the best match without clicking. Use it to check that your
reference images still fit your screen resolution and theme.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			var region screen.Region
			if screenshot != "" {
				src, err := screen.LoadGray(screenshot)
				if err != nil {
					return err
				}
				path := name
				if !filepath.IsAbs(path) {
					path = filepath.Join(imagesDir, name)
				}
				tmpl, err := screen.LoadGray(path)
				if err != nil {
					return err
				}
				m, err := screen.BestMatch(src, tmpl)
				if err != nil {
					return err
				}
				region = screen.Region{Name: name, Rect: m.Rect, Score: m.Score}
			} else {
				var err error
				region, err = screen.NewLocator(desktop.NewRobot(), imagesDir).Locate(cmd.Context(), name)
				if err != nil {
					return err
				}
			}

			c := region.Center()
			fmt.Fprintf(out, "%s: center=%d,%d score=%.3f\n", name, c.X, c.Y, region.Score) //nolint:errcheck
			if region.Score < screen.WeakMatchScore {
				fmt.Fprintf(out, "warning: score below %.2f, the image probably does not match this screen\n", screen.WeakMatchScore) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&imagesDir, "images-dir", config.DefaultImagesDir, "Directory holding the reference images")
	cmd.Flags().StringVar(&screenshot, "screenshot", "", "Match against this PNG instead of the live screen")

	return cmd
}
